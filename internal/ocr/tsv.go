package ocr

import (
	"fmt"
	"strconv"
	"strings"
)

// tesseract TSV columns:
// level page_num block_num par_num line_num word_num left top width height conf text
const (
	tsvLevel = iota
	tsvPage
	tsvBlock
	tsvPar
	tsvLine
	tsvWord
	tsvLeft
	tsvTop
	tsvWidth
	tsvHeight
	tsvConf
	tsvText

	tsvColumns = 12
	levelWord  = 5
)

type lineKey struct {
	page, block, par, line int
}

// parseTSV regroups word rows into line fragments in file order, which is
// tesseract's top-to-bottom, left-to-right reading order. The fragment box is
// the union rectangle of its word boxes; confidence is the mean word conf in
// 0..1. Rows that fail to parse are reported as warnings, not errors.
func parseTSV(out []byte) ([]Fragment, []string) {
	var (
		frags    []Fragment
		warns    []string
		curKey   lineKey
		curWords []string
		curConfs []float64
		minX, minY, maxX, maxY int
		open     bool
	)

	flush := func() {
		if !open || len(curWords) == 0 {
			open = false
			return
		}
		var sum float64
		var n int
		for _, c := range curConfs {
			if c >= 0 {
				sum += c
				n++
			}
		}
		var conf float32
		if n > 0 {
			conf = float32(sum / float64(n) / 100.0)
		}
		frags = append(frags, Fragment{
			Index: len(frags),
			Text:  strings.Join(curWords, " "),
			Box: Quad{
				{X: minX, Y: minY},
				{X: maxX, Y: minY},
				{X: maxX, Y: maxY},
				{X: minX, Y: maxY},
			},
			Confidence: conf,
		})
		curWords = nil
		curConfs = nil
		open = false
	}

	for i, ln := range strings.Split(string(out), "\n") {
		if i == 0 || strings.TrimSpace(ln) == "" {
			continue // header
		}
		cols := strings.Split(ln, "\t")
		if len(cols) < tsvColumns {
			warns = append(warns, fmt.Sprintf("tsv row %d: %d columns", i, len(cols)))
			continue
		}
		level, err := strconv.Atoi(cols[tsvLevel])
		if err != nil || level != levelWord {
			continue
		}
		text := strings.TrimSpace(cols[tsvText])
		if text == "" {
			continue
		}

		key, left, top, width, height, conf, err := parseWordRow(cols)
		if err != nil {
			warns = append(warns, fmt.Sprintf("tsv row %d: %v", i, err))
			continue
		}

		if !open || key != curKey {
			flush()
			curKey = key
			minX, minY = left, top
			maxX, maxY = left+width, top+height
			open = true
		} else {
			minX = min(minX, left)
			minY = min(minY, top)
			maxX = max(maxX, left+width)
			maxY = max(maxY, top+height)
		}
		curWords = append(curWords, text)
		curConfs = append(curConfs, conf)
	}
	flush()

	return frags, warns
}

func parseWordRow(cols []string) (key lineKey, left, top, width, height int, conf float64, err error) {
	ints := make([]int, 0, 9)
	for _, idx := range []int{tsvPage, tsvBlock, tsvPar, tsvLine, tsvLeft, tsvTop, tsvWidth, tsvHeight} {
		v, convErr := strconv.Atoi(cols[idx])
		if convErr != nil {
			return lineKey{}, 0, 0, 0, 0, 0, fmt.Errorf("column %d: %w", idx, convErr)
		}
		ints = append(ints, v)
	}
	conf, err = strconv.ParseFloat(cols[tsvConf], 64)
	if err != nil {
		conf = -1
		err = nil
	}
	key = lineKey{page: ints[0], block: ints[1], par: ints[2], line: ints[3]}
	return key, ints[4], ints[5], ints[6], ints[7], conf, nil
}
