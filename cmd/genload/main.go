package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Hakuto4838/ezskiplist/datastream"
)

// parseScientificNotation 解析科學記號字串（如 "1e5"）為整數
func parseScientificNotation(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// formatScientific 將數字格式化為科學記號（用於檔名）
func formatScientific(n int) string {
	if n == 0 {
		return "0"
	}
	exp := 0
	divisor := 1
	for temp := n; temp >= 10; temp /= 10 {
		exp++
		divisor *= 10
	}
	coefficient := float64(n) / float64(divisor)
	if coefficient == float64(int(coefficient)) {
		return fmt.Sprintf("%de%d", int(coefficient), exp)
	}
	return fmt.Sprintf("%.1fe%d", coefficient, exp)
}

// formatDecimal 將浮點數格式化為不含小數點的字串（用於檔名）
func formatDecimal(f float64) string {
	val := int(f * 100)
	switch {
	case val%100 == 0:
		return fmt.Sprintf("%d", val/100)
	case val%10 == 0:
		return fmt.Sprintf("%d_%d", val/100, (val%100)/10)
	default:
		return fmt.Sprintf("%d_%02d", val/100, val%100)
	}
}

func main() {
	var out string
	var path string
	var nStr string
	var kStr string
	var a float64
	var b float64
	var insertRatio float64
	var deleteRatio float64
	var seed int64
	var nums int

	flag.StringVar(&nStr, "n", "1e5", "key space (支援科學記號，如 1e5)")
	flag.StringVar(&kStr, "k", "1e5", "number of operations (支援科學記號，如 1e6)")
	flag.Float64Var(&a, "a", 0, "Zipf parameter s (設為 0 時使用均勻分布)")
	flag.Float64Var(&b, "b", 1.0, "Zipf parameter v (當 a > 0 時有效)")
	flag.Float64Var(&insertRatio, "insert", 0.45, "ratio of insert operations")
	flag.Float64Var(&deleteRatio, "delete", 0.1, "ratio of delete operations")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "seed for generators")
	flag.IntVar(&nums, "nums", 1, "number of files to generate")
	flag.StringVar(&out, "out", "", "output filename prefix (留空則自動生成)")
	flag.StringVar(&path, "path", ".", "output directory path")
	flag.Parse()

	n, err := parseScientificNotation(nStr)
	if err != nil {
		fmt.Printf("解析參數 n 錯誤: %v\n", err)
		os.Exit(1)
	}
	k, err := parseScientificNotation(kStr)
	if err != nil {
		fmt.Printf("解析參數 k 錯誤: %v\n", err)
		os.Exit(1)
	}
	if n <= 0 || k < 0 {
		fmt.Printf("invalid -n or -k: n=%d k=%d\n", n, k)
		os.Exit(1)
	}

	if out == "" {
		out = fmt.Sprintf("load_n%s_k%s_a%s_ir%s_dr%s",
			formatScientific(n),
			formatScientific(k),
			formatDecimal(a),
			formatDecimal(insertRatio),
			formatDecimal(deleteRatio))
	}
	if path != "." && path != "" {
		if err := os.MkdirAll(path, 0755); err != nil {
			fmt.Printf("建立輸出目錄失敗: %v\n", err)
			os.Exit(1)
		}
	}

	mix := datastream.Mix{InsertRatio: insertRatio, DeleteRatio: deleteRatio}
	for i := 0; i < nums; i++ {
		filename := fmt.Sprintf("%s.bin", out)
		if nums > 1 {
			filename = fmt.Sprintf("%s_%d.bin", out, i)
		}
		outfile := filepath.Join(path, filename)
		fileSeed := uint64(seed + int64(i))

		if err := generate(outfile, n, k, a, b, mix, fileSeed); err != nil {
			fmt.Printf("錯誤: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", outfile)
	}
}

func generate(outfile string, n, k int, a, b float64, mix datastream.Mix, seed uint64) error {
	var gen datastream.KeyGenerator
	if a == 0 {
		gen = datastream.NewUniformKeyGen(n, seed)
	} else {
		z, err := datastream.NewZipfKeyGen(n, a, b, seed)
		if err != nil {
			return err
		}
		gen = z
	}
	ops, err := datastream.GenerateOps(gen, k, mix, seed^0x9e3779b97f4a7c15)
	if err != nil {
		return err
	}
	return datastream.WriteOpFile(outfile, &datastream.OpFile{KeySpace: n, Ops: ops})
}
