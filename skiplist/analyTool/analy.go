package analyTool

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/Hakuto4838/ezskiplist/skiplist"
	"github.com/olekukonko/tablewriter"
)

// FindStep 計算找到指定 key 的總步數和各層步數
// 水平前進一次算一步，往下一層也算一步
func FindStep[K cmp.Ordered, V any](sl skiplist.Analyable[K, V], key K) (step int, level []int) {
	cur := sl.GetHead()
	if cur == nil {
		return 0, []int{}
	}

	_, maxLevel := sl.GetMaxStats()
	stepsPerLevel := make([]int, maxLevel+1)
	totalSteps := 0

	for h := maxLevel; h >= 0; h-- {
		levelSteps := 0
		for {
			next := cur.GetNextAt(h)
			if next == nil || next.GetKey() >= key {
				break
			}
			cur = next
			levelSteps++
		}
		stepsPerLevel[h] = levelSteps
		totalSteps += levelSteps
		if h > 0 {
			totalSteps++
		}
	}
	// 最後一步檢查第 0 層的右側節點
	if next := cur.GetNextAt(0); next != nil && next.GetKey() == key {
		totalSteps++
		stepsPerLevel[0]++
	}
	return totalSteps, stepsPerLevel
}

// AverageSteps 計算一組 key 的平均搜尋步數
func AverageSteps[K cmp.Ordered, V any](sl skiplist.Analyable[K, V], keys []K) float64 {
	if len(keys) == 0 {
		return 0
	}
	total := 0
	for _, k := range keys {
		s, _ := FindStep(sl, k)
		total += s
	}
	return float64(total) / float64(len(keys))
}

// PrintSkipList 以欄位對齊的方式打印 skip list 的結構
func PrintSkipList[K cmp.Ordered, V any](w io.Writer, sl skiplist.Analyable[K, V], maxLevel, maxNodes int) {
	_, actualMaxLevel := sl.GetMaxStats()
	maxLevel = min(maxLevel, actualMaxLevel)
	output := make([]string, maxLevel+1)
	for i := maxLevel; i >= 0; i-- {
		output[i] = fmt.Sprintf("level %d : ", i)
	}

	head := sl.GetHead()
	if head == nil {
		fmt.Fprintln(w, "skip list is empty")
		return
	}

	node := head.GetNextAt(0)
	for count := 0; node != nil && count < maxNodes; count++ {
		lv := node.GetLevel()
		for i := range output {
			if i <= lv {
				output[i] += fmt.Sprintf("%3v ->", node.GetKey())
			} else {
				output[i] += "    ->"
			}
		}
		node = node.GetNextAt(0)
	}

	for i := maxLevel; i >= 0; i-- {
		fmt.Fprintln(w, output[i])
	}
}

// PrintLevels 由最高層往下，逐層印出 key:value
func PrintLevels[K cmp.Ordered, V any](w io.Writer, sl skiplist.Analyable[K, V]) error {
	head := sl.GetHead()
	if head == nil {
		return nil
	}
	_, maxLevel := sl.GetMaxStats()
	if _, err := fmt.Fprintln(w, "*****Skip List*****"); err != nil {
		return err
	}
	for i := maxLevel; i >= 0; i-- {
		line := "Level " + strconv.Itoa(i) + ": "
		for node := head.GetNextAt(i); node != nil; node = node.GetNextAt(i) {
			line += fmt.Sprintf("%v:%v;", node.GetKey(), node.GetValue())
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// CountLevel 計算每層的節點數量，index 為層級
func CountLevel[K cmp.Ordered, V any](sl skiplist.Analyable[K, V]) []int {
	_, maxLevel := sl.GetMaxStats()
	levelCounts := make([]int, maxLevel+1)

	head := sl.GetHead()
	if head == nil {
		return levelCounts
	}
	// 節點存在於 level 0 到 GetLevel() 的所有層
	for cur := head.GetNextAt(0); cur != nil; cur = cur.GetNextAt(0) {
		for i := 0; i <= cur.GetLevel() && i < len(levelCounts); i++ {
			levelCounts[i]++
		}
	}
	return levelCounts
}

// LevelTable 以表格輸出各層節點數與相對下一層的比例
func LevelTable[K cmp.Ordered, V any](w io.Writer, sl skiplist.Analyable[K, V]) {
	nodes, maxLevel := sl.GetMaxStats()
	counts := CountLevel(sl)

	rows := make([][]string, 0, len(counts))
	for i := maxLevel; i >= 0; i-- {
		ratio := "-"
		if i > 0 && counts[i-1] > 0 {
			ratio = fmt.Sprintf("%.3f", float64(counts[i])/float64(counts[i-1]))
		}
		rows = append(rows, []string{strconv.Itoa(i), strconv.Itoa(counts[i]), ratio})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Level", "Nodes", "Ratio"})
	table.SetFooter([]string{"Total", strconv.Itoa(nodes), ""})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

var (
	ErrUnordered    = errors.New("level chain is not strictly increasing")
	ErrNotNested    = errors.New("node missing from a lower level")
	ErrLevelTooHigh = errors.New("node level exceeds current level")
	ErrStaleLevel   = errors.New("current level is above the highest occupied level")
	ErrCountDrift   = errors.New("element count does not match level 0")
)

// Check 檢查 skip list 的結構是否正確：
// 每層嚴格遞增、層級集合為巢狀、目前層級為最小可能值、節點數一致
func Check[K cmp.Ordered, V any](sl skiplist.Analyable[K, V]) error {
	head := sl.GetHead()
	if head == nil {
		return nil
	}
	nodes, maxLevel := sl.GetMaxStats()

	// 第 0 層的 key 集合與數量
	base := make(map[K]int)
	count := 0
	highest := 0
	var prev skiplist.Nodelike[K, V]
	for cur := head.GetNextAt(0); cur != nil; cur = cur.GetNextAt(0) {
		if prev != nil && prev.GetKey() >= cur.GetKey() {
			return fmt.Errorf("%w: level 0 %v -> %v", ErrUnordered, prev.GetKey(), cur.GetKey())
		}
		if cur.GetLevel() > maxLevel {
			return fmt.Errorf("%w: key %v level %d > %d", ErrLevelTooHigh, cur.GetKey(), cur.GetLevel(), maxLevel)
		}
		highest = max(highest, cur.GetLevel())
		base[cur.GetKey()] = cur.GetLevel()
		count++
		prev = cur
	}
	if count != nodes {
		return fmt.Errorf("%w: counted %d, reported %d", ErrCountDrift, count, nodes)
	}
	if maxLevel > 0 && highest < maxLevel {
		return fmt.Errorf("%w: current %d, highest %d", ErrStaleLevel, maxLevel, highest)
	}

	// 上層必須遞增，且每個節點都出現在其所有層級
	for i := 1; i <= maxLevel; i++ {
		seen := 0
		prev = nil
		for cur := head.GetNextAt(i); cur != nil; cur = cur.GetNextAt(i) {
			if prev != nil && prev.GetKey() >= cur.GetKey() {
				return fmt.Errorf("%w: level %d %v -> %v", ErrUnordered, i, prev.GetKey(), cur.GetKey())
			}
			lv, ok := base[cur.GetKey()]
			if !ok || lv < i {
				return fmt.Errorf("%w: key %v at level %d", ErrNotNested, cur.GetKey(), i)
			}
			seen++
			prev = cur
		}
		want := 0
		for _, lv := range base {
			if lv >= i {
				want++
			}
		}
		if seen != want {
			return fmt.Errorf("%w: level %d links %d of %d nodes", ErrNotNested, i, seen, want)
		}
	}
	return nil
}
