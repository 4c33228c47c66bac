package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Hakuto4838/ezskiplist/skiplist"
	"github.com/Hakuto4838/ezskiplist/skiplist/analyTool"
	"github.com/Hakuto4838/ezskiplist/skiplist/ezsl"
)

func main() {
	var store string
	var maxLevel int
	var reload bool
	var seed uint64

	flag.StringVar(&store, "store", "store/dumpFile", "dump file path")
	flag.IntVar(&maxLevel, "maxlevel", 6, "max level of the skip list")
	flag.BoolVar(&reload, "load", false, "reload the dump into a fresh skip list at the end")
	flag.Uint64Var(&seed, "seed", 0, "level seed (0 = time based)")
	flag.Parse()

	cfg := ezsl.DefaultConfig(maxLevel)
	cfg.Seed = seed
	cfg.Logger = log.New(os.Stderr, "ezsl: ", log.LstdFlags)
	sl, err := ezsl.New[int, string](cfg)
	if err != nil {
		log.Fatalf("create skip list: %v", err)
	}

	// key 用 int，value 用 string
	insert(sl, 1, "你好")
	insert(sl, 3, "這裡是")
	insert(sl, 7, "EZ")
	insert(sl, 8, "的跳表")
	insert(sl, 9, "測試程式")
	insert(sl, 19, "LYX")
	insert(sl, 19, "Go")

	fmt.Printf("skipList size: %d\n", sl.Size())

	if dir := filepath.Dir(store); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("create store dir %s: %v", dir, err)
		}
	}
	if err := sl.DumpFile(store, ezsl.IntStringCodec{}); err != nil {
		log.Fatalf("dump: %v", err)
	}
	fmt.Printf("dumped to %s\n", store)

	search(sl, 9)
	search(sl, 18)

	if err := sl.Display(os.Stdout); err != nil {
		log.Printf("display: %v", err)
	}

	remove(sl, 3)
	remove(sl, 7)

	fmt.Printf("skipList size: %d\n", sl.Size())
	if err := sl.Display(os.Stdout); err != nil {
		log.Printf("display: %v", err)
	}

	if reload {
		fresh, err := ezsl.New[int, string](cfg)
		if err != nil {
			log.Fatalf("create skip list: %v", err)
		}
		report, err := fresh.LoadFile(store, ezsl.IntStringCodec{})
		if err != nil {
			log.Fatalf("load: %v", err)
		}
		fmt.Printf("reloaded %d of %d lines (skipped %d, duplicates %d), size %d\n",
			report.Loaded, report.Lines, report.Skipped, report.Duplicates, fresh.Size())
		analyTool.LevelTable[int, string](os.Stdout, fresh)
	}
}

func insert(sl *ezsl.SkipList[int, string], key int, value string) {
	switch err := sl.Insert(key, value); {
	case err == nil:
		fmt.Printf("Successfully inserted key:%d, value:%s\n", key, value)
	case errors.Is(err, skiplist.ErrKeyExists):
		fmt.Printf("key: %d, exists\n", key)
	default:
		log.Printf("insert %d: %v", key, err)
	}
}

func search(sl *ezsl.SkipList[int, string], key int) {
	fmt.Printf("search_element-----------------\n")
	if v, ok := sl.Search(key); ok {
		fmt.Printf("Found key: %d, value: %s\n", key, v)
		return
	}
	fmt.Printf("Not Found Key: %d\n", key)
}

func remove(sl *ezsl.SkipList[int, string], key int) {
	if err := sl.Delete(key); err != nil {
		fmt.Printf("delete key %d: %v\n", key, err)
		return
	}
	fmt.Printf("Successfully deleted key %d\n", key)
}
