package nfa

import "sort"

// CharRanges 字母表划分
//
// 把 0-255 划分为若干连续区间，普通状态的边以区间编号为键。
// bounds[i] 是第 i 个区间的起点，区间 i 为 [bounds[i], bounds[i+1])，最后一个元素固定为 256。
type CharRanges struct {
	bounds []int
}

// DefaultCharRanges 返回默认划分：每个字节独占一个区间
func DefaultCharRanges() CharRanges {
	bounds := make([]int, 257)
	for i := range bounds {
		bounds[i] = i
	}
	return CharRanges{bounds: bounds}
}

// NewCharRanges 根据规则中出现的字面字符计算划分
//
// 每个字面字符独占一个区间，其余字节合并为尽量大的区间。
// 没有任何字面字符时退化为单个区间 [0,256)。
func NewCharRanges(literals []byte) CharRanges {
	set := map[int]bool{0: true, 256: true}
	for _, c := range literals {
		set[int(c)] = true
		set[int(c)+1] = true
	}
	bounds := make([]int, 0, len(set))
	for b := range set {
		bounds = append(bounds, b)
	}
	sort.Ints(bounds)
	return CharRanges{bounds: bounds}
}

// Len 返回区间个数
func (r CharRanges) Len() int {
	if len(r.bounds) == 0 {
		return 0
	}
	return len(r.bounds) - 1
}

// Index 返回字节 c 所在区间的编号
func (r CharRanges) Index(c byte) int {
	// 第一个大于 c 的起点的前一个区间
	return sort.SearchInts(r.bounds, int(c)+1) - 1
}

// Range 返回第 i 个区间的 [lo, hi)
func (r CharRanges) Range(i int) (lo, hi int) {
	return r.bounds[i], r.bounds[i+1]
}
