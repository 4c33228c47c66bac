package ezsl_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Hakuto4838/ezskiplist/skiplist"
	"github.com/Hakuto4838/ezskiplist/skiplist/ezsl"
)

func ExampleSkipList_Insert() {
	sl := ezsl.NewDefault[int, string](6)
	fmt.Println(sl.Insert(19, "f"))
	err := sl.Insert(19, "g")
	fmt.Println(errors.Is(err, skiplist.ErrKeyExists))
	v, _ := sl.Search(19)
	fmt.Println(v, sl.Size())
	// Output: <nil>
	// true
	// f 1
}

func ExampleSkipList_Delete() {
	sl := ezsl.NewDefault[int, string](6)
	sl.Insert(3, "b")
	sl.Insert(7, "c")
	fmt.Println(sl.Delete(3))
	fmt.Println(errors.Is(sl.Delete(3), skiplist.ErrKeyNotFound))
	fmt.Println(sl.Size())
	// Output: <nil>
	// true
	// 1
}

func ExampleSkipList_DumpTo() {
	sl := ezsl.NewDefault[int, string](6)
	for _, k := range []int{9, 1, 8} {
		sl.Insert(k, fmt.Sprintf("v%d", k))
	}
	var sb strings.Builder
	sl.DumpTo(&sb, ezsl.IntStringCodec{})
	fmt.Print(sb.String())
	// Output: 1:v1
	// 8:v8
	// 9:v9
}

func ExampleSkipList_LoadFrom() {
	sl := ezsl.NewDefault[int, string](6)
	report, err := sl.LoadFrom(strings.NewReader("1:a\nbroken\n2:b\n"), ezsl.IntStringCodec{})
	fmt.Println(report.Loaded, report.Skipped, err)
	// Output: 2 1 <nil>
}
