// Command cocadactl is a demo/bench CLI: it reads whitespace-separated
// integers from stdin, feeds them into one instance of each container
// this module implements, and reports size/structural stats for each.
// It is the Go-native analogue of the out-of-scope C `libcocadaapp/src/cli.c`
// named in spec.md §1 — the container core itself stays a library; this
// binary only demonstrates it.
package main

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/paguso/cocada-go/cmpfn"
	"github.com/paguso/cocada-go/config"
	"github.com/paguso/cocada-go/container/avl"
	"github.com/paguso/cocada-go/container/hashmap"
	"github.com/paguso/cocada-go/container/minqueue"
	"github.com/paguso/cocada-go/container/ordmap"
	"github.com/paguso/cocada-go/container/roaring"
	"github.com/paguso/cocada-go/container/skiplist"
	"github.com/paguso/cocada-go/container/vebset"
	"github.com/paguso/cocada-go/container/vec"
	"github.com/paguso/cocada-go/corelog"
	"github.com/paguso/cocada-go/hashfn"
	"github.com/paguso/cocada-go/sketch/distinct"
	"github.com/paguso/cocada-go/sketch/gk"
	"github.com/paguso/cocada-go/sketch/kll"
	"github.com/paguso/cocada-go/sketch/qdigest"
)

func readInts(r *bufio.Scanner) []int64 {
	var vals []int64
	r.Split(bufio.ScanWords)
	for r.Scan() {
		var v int64
		if _, err := fmt.Sscan(r.Text(), &v); err == nil {
			vals = append(vals, v)
		}
	}
	return vals
}

func run(c *cli.Context) error {
	tun := config.Defaults()
	if e := c.Float64("gk-epsilon"); e > 0 {
		tun.GKEpsilon = e
	}
	if e := c.Float64("kll-epsilon"); e > 0 {
		tun.KLLEpsilon = e
	}
	roaringSize := c.Int("roaring-size")

	vals := readInts(bufio.NewScanner(os.Stdin))
	if len(vals) == 0 {
		corelog.Logger.Warn().Msg("no input integers read from stdin")
		return nil
	}

	cmpI64 := cmpfn.Natural[int64]()

	v := vec.New[int64](0)
	dq := minqueue.New[int64](cmpI64)
	tree := avl.New[int64](cmpI64)
	sl := skiplist.New[int64](cmpI64)
	hashInt64 := func(v int64) uint64 { return hashfn.Uint64(uint64(v)) }
	hm := hashmap.New[int64, int64](hashInt64, cmpfn.NaturalEq[int64]())
	om := ordmap.NewAVL[int64, int64](cmpI64)
	veb := vebset.New()
	rb := roaring.New(roaringSize)
	gkS := gk.New[int64](cmpI64, tun.GKEpsilon)
	kllS := kll.New[int64](cmpI64, tun.KLLEpsilon)
	fm := distinct.NewFM(uint64(1)<<32, 5, 7)
	bjkst := distinct.NewBJKST(32, 0.1, 0.05, rand.Uint64())
	qd := qdigest.New(roaringSize, tun.GKEpsilon)

	for _, x := range vals {
		v.Push(x)
		dq.Push(x)
		tree.Ins(x)
		sl.Ins(x)
		hm.Ins(x, x*x)
		om.Set(x, x*x)
		if x >= 0 && x <= 0xFFFFFFFF {
			veb.Add(uint32(x))
		}
		if x >= 0 && int(x) < roaringSize {
			rb.Set(int(x), true)
		}
		gkS.Upd(x)
		kllS.Upd(x)
		u := uint64(x)
		fm.Process(u)
		bjkst.Process(u)
		if x >= 0 && int(x) < roaringSize {
			qd.Upd(int(x), 1)
		}
	}

	fmt.Printf("read %d integers\n", len(vals))
	fmt.Printf("vec:        len=%d cap=%d\n", v.Len(), v.Cap())
	fmt.Printf("minqueue:   len=%d min=%d\n", dq.Len(), dq.Min())
	fmt.Printf("avl:        len=%d height=%d\n", tree.Len(), tree.Height())
	fmt.Printf("skiplist:   len=%d height=%d\n", sl.Len(), sl.Height())
	fmt.Printf("hashmap:    len=%d\n", hm.Len())
	fmt.Printf("ordmap:     len=%d\n", om.Len())
	fmt.Printf("vebset:     len=%d universe=%d\n", veb.Len(), veb.Universe())
	fmt.Printf("roaring:    cardinality=%d stats=%+v\n", rb.Cardinality(), rb.Stats())
	fmt.Printf("gk:         n=%d size=%d\n", gkS.N(), gkS.Size())
	fmt.Printf("kll:        n=%d\n", kllS.N())
	fmt.Printf("fm:         estimate=%d\n", fm.Query())
	fmt.Printf("bjkst:      estimate=%d\n", bjkst.Query())
	fmt.Printf("qdigest:    n=%d rank(last)=%d\n", qd.N(), qd.Qry(int(vals[len(vals)-1])))
	return nil
}

func main() {
	app := &cli.App{
		Name:  "cocadactl",
		Usage: "build one of each cocada-go container from stdin-fed integers and report stats",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "gk-epsilon", Usage: "target rank error for the GK summary"},
			&cli.Float64Flag{Name: "kll-epsilon", Usage: "target rank error for the KLL summary"},
			&cli.IntFlag{Name: "roaring-size", Usage: "universe size for the roaring bit vector", Value: 1 << 20},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
