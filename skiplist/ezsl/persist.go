package ezsl

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Hakuto4838/ezskiplist/skiplist"
)

// 檔案格式（UTF-8 文字）：
// 每行一筆 <key><delimiter><value>，依 key 升冪，無檔頭。
// value 中的分隔字串不做跳脫，讀回時以第一個分隔字串切開。
// 讀取時只以 '\n' 斷行，行長不設上限，'\r' 視為內容保留。

// Codec 負責 key/value 與文字之間的轉換
type Codec[K cmp.Ordered, V any] interface {
	EncodeKey(K) string
	DecodeKey(string) (K, error)
	EncodeValue(V) string
	DecodeValue(string) (V, error)
}

// IntStringCodec 處理 int key 與 string value
type IntStringCodec struct{}

func (IntStringCodec) EncodeKey(k int) string { return strconv.Itoa(k) }
func (IntStringCodec) DecodeKey(s string) (int, error) { return strconv.Atoi(s) }
func (IntStringCodec) EncodeValue(v string) string { return v }
func (IntStringCodec) DecodeValue(s string) (string, error) { return s, nil }

// StringCodec 處理 string key 與 string value
type StringCodec struct{}

func (StringCodec) EncodeKey(k string) string { return k }
func (StringCodec) DecodeKey(s string) (string, error) { return s, nil }
func (StringCodec) EncodeValue(v string) string { return v }
func (StringCodec) DecodeValue(s string) (string, error) { return s, nil }

// LoadReport 統計一次 load 的結果，供呼叫端核對筆數
type LoadReport struct {
	Lines      int // 讀到的總行數
	Loaded     int // 成功插入
	Skipped    int // 格式錯誤而略過
	Duplicates int // key 已存在而忽略
}

// DumpTo 將第 0 層依序寫入 w
func (s *SkipList[K, V]) DumpTo(w io.Writer, c Codec[K, V]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bw := bufio.NewWriter(w)
	for ref := s.arena.at(headRef).forward[0]; ref != nilRef; {
		nd := s.arena.at(ref)
		if _, err := fmt.Fprintf(bw, "%s%s%s\n", c.EncodeKey(nd.key), s.delim, c.EncodeValue(nd.value)); err != nil {
			return err
		}
		ref = nd.forward[0]
	}
	return bw.Flush()
}

// DumpFile 以完整快照覆寫 path，不會建立目錄
func (s *SkipList[K, V]) DumpFile(path string, c Codec[K, V]) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dump %s: %w", path, err)
	}
	if err := s.DumpTo(file, c); err != nil {
		file.Close()
		return fmt.Errorf("dump %s: %w", path, err)
	}
	return file.Close()
}

// parseLine 切出一行中的 key 與 value
func (s *SkipList[K, V]) parseLine(line string, c Codec[K, V]) (K, V, error) {
	var (
		zeroK K
		zeroV V
	)
	if line == "" {
		return zeroK, zeroV, fmt.Errorf("%w: empty line", skiplist.ErrMalformedRecord)
	}
	rawKey, rawValue, ok := strings.Cut(line, s.delim)
	if !ok {
		return zeroK, zeroV, fmt.Errorf("%w: missing delimiter %q", skiplist.ErrMalformedRecord, s.delim)
	}
	key, err := c.DecodeKey(rawKey)
	if err != nil {
		return zeroK, zeroV, fmt.Errorf("%w: key: %v", skiplist.ErrMalformedRecord, err)
	}
	value, err := c.DecodeValue(rawValue)
	if err != nil {
		return zeroK, zeroV, fmt.Errorf("%w: value: %v", skiplist.ErrMalformedRecord, err)
	}
	return key, value, nil
}

// LoadFrom 逐行讀取 r 並走一般插入流程。
// 格式錯誤的行會被略過；重複的 key 不覆寫。整個過程持有鎖。
func (s *SkipList[K, V]) LoadFrom(r io.Reader, c Codec[K, V]) (LoadReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var report LoadReport
	br := bufio.NewReader(r)
	for {
		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return report, readErr
		}
		if readErr == io.EOF && line == "" {
			return report, nil
		}
		report.Lines++
		if key, value, err := s.parseLine(strings.TrimSuffix(line, "\n"), c); err != nil {
			s.logger.Printf("skip line %d: %v", report.Lines, err)
			report.Skipped++
		} else if err := s.insert(key, value); err == nil {
			report.Loaded++
		} else if errors.Is(err, skiplist.ErrKeyExists) {
			report.Duplicates++
		} else {
			return report, err
		}
		if readErr == io.EOF {
			return report, nil
		}
	}
}

// LoadFile 由 path 讀回 dump 檔
func (s *SkipList[K, V]) LoadFile(path string, c Codec[K, V]) (LoadReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return LoadReport{}, fmt.Errorf("load %s: %w", path, err)
	}
	defer file.Close()

	report, err := s.LoadFrom(file, c)
	if err != nil {
		return report, fmt.Errorf("load %s: %w", path, err)
	}
	return report, nil
}
