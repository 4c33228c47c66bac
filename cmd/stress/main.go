package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Hakuto4838/ezskiplist/datastream"
	"github.com/Hakuto4838/ezskiplist/skiplist/ezsl"
	"github.com/olekukonko/tablewriter"
)

type phase struct {
	name string
	ops  []datastream.Operation
}

type phaseStats struct {
	durations []float64 // ms
	size      int
}

func main() {
	var threads int
	var count int
	var maxLevel int
	var dist string
	var zipfS float64
	var zipfV float64
	var mode string
	var runs int
	var seed int64
	var file string

	flag.IntVar(&threads, "threads", 4, "number of worker goroutines")
	flag.IntVar(&count, "count", 100000, "operations per phase (also the key space)")
	flag.IntVar(&maxLevel, "maxlevel", 18, "max level of the skip list")
	flag.StringVar(&dist, "dist", "uniform", "key distribution: uniform or zipf")
	flag.Float64Var(&zipfS, "zipf.s", 1.2, "Zipf parameter s (>1)")
	flag.Float64Var(&zipfV, "zipf.v", 1.0, "Zipf parameter v (>=1)")
	flag.StringVar(&mode, "mode", "all", "phases to run: all or comma list (insert,search,mixed)")
	flag.IntVar(&runs, "runs", 3, "how many times to repeat each benchmark")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "seed for generators")
	flag.StringVar(&file, "file", "", "replay an op file written by genload instead of generating phases")
	flag.Parse()

	if threads <= 0 || count < 0 || runs <= 0 {
		log.Fatalf("invalid -threads=%d -count=%d -runs=%d", threads, count, runs)
	}

	var phases []phase
	if file != "" {
		of, err := datastream.ReadOpFile(file)
		if err != nil {
			log.Fatalf("read op file %s: %v", file, err)
		}
		fmt.Printf("op_file: %s (key space %d)\n", file, of.KeySpace)
		phases = []phase{{name: "replay", ops: of.Ops}}
	} else {
		var err error
		phases, err = buildPhases(parseModes(mode), dist, count, zipfS, zipfV, uint64(seed))
		if err != nil {
			log.Fatalf("build phases: %v", err)
		}
	}

	fmt.Printf("threads: %d, maxlevel: %d, runs: %d, seed: %d\n", threads, maxLevel, runs, seed)
	fmt.Println(strings.Repeat("=", 80))

	stats := make([]phaseStats, len(phases))
	for run := 0; run < runs; run++ {
		cfg := ezsl.DefaultConfig(maxLevel)
		cfg.Seed = uint64(seed) + uint64(run) + 1
		sl, err := ezsl.New[int, string](cfg)
		if err != nil {
			log.Fatalf("create skip list: %v", err)
		}
		for i, p := range phases {
			elapsed := runOps(sl, datastream.Partition(p.ops, threads))
			stats[i].durations = append(stats[i].durations, float64(elapsed.Microseconds())/1000.0)
			stats[i].size = sl.Size()
			fmt.Printf("run %d %s elapsed: %v\n", run+1, p.name, elapsed)
		}
	}

	renderTable(phases, stats, threads)
}

func parseModes(s string) []string {
	if s == "" || s == "all" {
		return []string{"insert", "search", "mixed"}
	}
	out := make([]string, 0, 3)
	seen := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		t := strings.TrimSpace(strings.ToLower(p))
		if seen[t] {
			continue
		}
		switch t {
		case "insert", "search", "mixed":
			out = append(out, t)
			seen[t] = true
		}
	}
	if len(out) == 0 {
		return []string{"insert", "search", "mixed"}
	}
	return out
}

func newKeyGen(dist string, n int, s, v float64, seed uint64) (datastream.KeyGenerator, error) {
	switch dist {
	case "uniform":
		return datastream.NewUniformKeyGen(n, seed), nil
	case "zipf":
		return datastream.NewZipfKeyGen(n, s, v, seed)
	default:
		return nil, fmt.Errorf("unknown -dist: %s", dist)
	}
}

// buildPhases 每個 phase 用各自的 key 產生器，key 範圍皆為 0..count-1
func buildPhases(modes []string, dist string, count int, s, v float64, seed uint64) ([]phase, error) {
	mixes := map[string]datastream.Mix{
		"insert": datastream.InsertOnly,
		"search": datastream.SearchOnly,
		"mixed":  datastream.Mixed,
	}
	phases := make([]phase, 0, len(modes))
	for i, m := range modes {
		gen, err := newKeyGen(dist, max(count, 1), s, v, seed+uint64(i))
		if err != nil {
			return nil, err
		}
		ops, err := datastream.GenerateOps(gen, count, mixes[m], seed+uint64(i)+100)
		if err != nil {
			return nil, err
		}
		phases = append(phases, phase{name: m, ops: ops})
	}
	return phases, nil
}

// runOps 每段操作交給一個 goroutine，回傳全部完成的時間
func runOps(sl *ezsl.SkipList[int, string], parts [][]datastream.Operation) time.Duration {
	var wg sync.WaitGroup
	start := time.Now()
	for _, part := range parts {
		wg.Add(1)
		go func(ops []datastream.Operation) {
			defer wg.Done()
			for _, op := range ops {
				switch op.Type {
				case datastream.OpSearch:
					sl.Search(op.Key)
				case datastream.OpInsert:
					_ = sl.Insert(op.Key, "a")
				case datastream.OpDelete:
					_ = sl.Delete(op.Key)
				}
			}
		}(part)
	}
	wg.Wait()
	return time.Since(start)
}

func summarize(durations []float64) (avg, lo, hi float64) {
	if len(durations) == 0 {
		return 0, 0, 0
	}
	sorted := append([]float64(nil), durations...)
	sort.Float64s(sorted)
	sum := 0.0
	for _, d := range sorted {
		sum += d
	}
	return sum / float64(len(sorted)), sorted[0], sorted[len(sorted)-1]
}

func renderTable(phases []phase, stats []phaseStats, threads int) {
	rows := make([][]string, 0, len(phases))
	for i, p := range phases {
		avg, lo, hi := summarize(stats[i].durations)
		thr := "N/A"
		if avg > 0 {
			thr = fmt.Sprintf("%.2f", float64(len(p.ops))/(avg/1000.0))
		}
		rows = append(rows, []string{
			p.name,
			fmt.Sprintf("%d", threads),
			fmt.Sprintf("%d", len(p.ops)),
			fmt.Sprintf("%.3f", avg),
			fmt.Sprintf("%.3f", lo),
			fmt.Sprintf("%.3f", hi),
			thr,
			fmt.Sprintf("%d", stats[i].size),
		})
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Phase", "Threads", "Ops", "Avg(ms)", "Min(ms)", "Max(ms)", "Ops/s", "Size"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}
