package ocr

import (
	"context"
	"strings"
	"testing"
)

const sampleTSV = `level	page_num	block_num	par_num	line_num	word_num	left	top	width	height	conf	text
1	1	0	0	0	0	0	0	640	480	-1	
5	1	1	1	1	1	10	10	80	20	96.5	Jane
5	1	1	1	1	2	100	10	60	20	93.5	Doe
5	1	1	1	2	1	10	40	50	18	90.0	CEO
5	1	2	1	1	1	10	80	200	18	88.0	www.acme.com
`

func TestParseTSVGroupsWordsIntoLines(t *testing.T) {
	frags, warns := parseTSV([]byte(sampleTSV))
	if len(warns) != 0 {
		t.Errorf("unexpected warnings: %v", warns)
	}
	if len(frags) != 3 {
		t.Fatalf("got %d fragments, want 3", len(frags))
	}

	if frags[0].Text != "Jane Doe" {
		t.Errorf("fragment 0 text = %q, want %q", frags[0].Text, "Jane Doe")
	}
	if frags[1].Text != "CEO" {
		t.Errorf("fragment 1 text = %q, want %q", frags[1].Text, "CEO")
	}
	if frags[2].Text != "www.acme.com" {
		t.Errorf("fragment 2 text = %q, want %q", frags[2].Text, "www.acme.com")
	}

	for i, f := range frags {
		if f.Index != i {
			t.Errorf("fragment %d carries index %d", i, f.Index)
		}
	}

	// union box of "Jane" and "Doe"
	box := frags[0].Box
	if box[0].X != 10 || box[0].Y != 10 || box[2].X != 160 || box[2].Y != 30 {
		t.Errorf("fragment 0 box = %v, want union of word boxes", box)
	}

	// mean of 96.5 and 93.5 is 95 -> 0.95
	if got := frags[0].Confidence; got < 0.949 || got > 0.951 {
		t.Errorf("fragment 0 confidence = %v, want 0.95", got)
	}
}

func TestParseTSVSkipsMalformedRows(t *testing.T) {
	tsv := "level\tpage_num\n5\t1\tbroken\n"
	frags, warns := parseTSV([]byte(tsv))
	if len(frags) != 0 {
		t.Errorf("got %d fragments from malformed input, want 0", len(frags))
	}
	if len(warns) == 0 {
		t.Errorf("expected a warning for the malformed row")
	}
}

type stubRunner struct {
	out  string
	args []string
}

func (s *stubRunner) Run(_ context.Context, _ string, args ...string) ([]byte, []byte, error) {
	s.args = args
	return []byte(s.out), nil, nil
}

func TestExtractRunsTesseractInTSVMode(t *testing.T) {
	stub := &stubRunner{out: sampleTSV}
	e := NewExtractor(Config{Language: "eng"}, nil)
	e.runner = stub

	res, err := e.Extract(context.Background(), []byte("not-a-real-png"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(res.Fragments) != 3 {
		t.Fatalf("got %d fragments, want 3", len(res.Fragments))
	}
	if res.Language != "eng" {
		t.Errorf("language = %q, want eng", res.Language)
	}

	joined := strings.Join(stub.args, " ")
	if !strings.Contains(joined, "-l eng") {
		t.Errorf("tesseract args %q missing language flag", joined)
	}
	if stub.args[len(stub.args)-1] != "tsv" {
		t.Errorf("tesseract args %q missing tsv output mode", joined)
	}
}
