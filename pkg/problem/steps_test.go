package problem

import (
	"strings"
	"testing"
)

func TestSplitStepsPartition(t *testing.T) {
	// Concatenating the fragments must reproduce the input exactly,
	// whatever the boundary structure looks like.
	bodies := []string{
		"single paragraph, no breaks",
		"first\n\nsecond\n\nthird",
		`intro \[ x^2 = 4 \] outro`,
		"a\n\n\n\nb",
		`\[ \frac{1}{2} \]`,
		"text with\nsingle newline",
		`para one

para two \[ y = mx + b \] tail

para three`,
		`unterminated \[ x = 1`,
	}

	for _, body := range bodies {
		steps := SplitSteps(body)
		if got := strings.Join(steps, ""); got != body {
			t.Errorf("partition broken for %q:\n got %q", body, got)
		}
	}
}

func TestSplitStepsBoundaries(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty", "", 0},
		{"single paragraph", "just one thought", 1},
		{"two paragraphs", "one\n\ntwo", 2},
		{"math block is its own step", `before \[ x=1 \] after`, 3},
		{"paragraph break inside math ignored", "\\[ a\n\nb \\]", 1},
		{"trailing blank merged", "one\n\ntwo\n\n", 2},
		{"six steps", "a\n\nb\n\nc\n\nd\n\ne\n\nf", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountSteps(tt.body); got != tt.want {
				t.Errorf("CountSteps(%q) = %d, want %d\nsteps: %q", tt.body, got, tt.want, SplitSteps(tt.body))
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Category
	}{
		{"one step", "x^2=4 → x=±2", CategoryShort},
		{"two steps", "expand\n\nsolve", CategoryMedium},
		{"five steps", "a\n\nb\n\nc\n\nd\n\ne", CategoryMedium},
		{"six steps", "a\n\nb\n\nc\n\nd\n\ne\n\nf", CategoryLong},
		{"math blocks count as steps", `\[ a \] \[ b \] \[ c \]`, CategoryMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.body); got != tt.want {
				t.Errorf("Classify = %q, want %q (steps=%d)", got, tt.want, CountSteps(tt.body))
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	body := "step one\n\nstep two \\[ x \\] tail"
	first := Classify(body)
	for i := 0; i < 10; i++ {
		if got := Classify(body); got != first {
			t.Fatalf("Classify is not deterministic: %q then %q", first, got)
		}
	}
}

func TestEffectiveCategory(t *testing.T) {
	// Explicit category wins even when inference would disagree.
	long := Task{Number: 1, Category: CategoryShort, Solution: "a\n\nb\n\nc\n\nd\n\ne\n\nf"}
	if got := long.EffectiveCategory(); got != CategoryShort {
		t.Errorf("explicit category not respected: got %q", got)
	}

	inferred := Task{Number: 2, Solution: "one\n\ntwo\n\nthree"}
	if got := inferred.EffectiveCategory(); got != CategoryMedium {
		t.Errorf("inferred category = %q, want medium", got)
	}
}

func TestExtractAnswer(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   string
		wantOK bool
	}{
		{"present", "work work <answer>x = ±2</answer>", "x = ±2", true},
		{"absent", "no marker here", "", false},
		{"unterminated", "<answer>x = 2", "", false},
		{"whitespace trimmed", "<answer>\n 42 \n</answer>", "42", true},
		{"first wins", "<answer>a</answer> <answer>b</answer>", "a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractAnswer(tt.body)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ExtractAnswer = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in     string
		want   Category
		wantOK bool
	}{
		{"short", CategoryShort, true},
		{"medium", CategoryMedium, true},
		{"long", CategoryLong, true},
		{"SHORT", "", false},
		{"tiny", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseCategory(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseCategory(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
