package answers

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"trims and lowercases", "  Answer42 ", "answer42"},
		{"collapses whitespace runs", "ANSWER   42", "answer 42"},
		{"tabs and newlines collapse to one space", "a\t\nb", "a b"},
		{"empty stays empty", "", ""},
		{"whitespace only becomes empty", " \t \n ", ""},
		{"nfkc folds compatibility forms", "４２", "42"}, // fullwidth digits
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.in)
			if got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"  Answer42 ",
		"ANSWER   42",
		"café",
		"café", // combining accent
		"ＡＢＣ",
		"already normal",
		"",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestCommitDeterministic(t *testing.T) {
	if Commit("answer 42") != Commit("answer 42") {
		t.Fatal("Commit is not deterministic")
	}

	// Known vector: sha256("answer 42")
	want := "5df3a8852fe705a79e831da2169665effc915cdbea0ba1152c8fb312b7ac2db2"
	if got := Commit("answer 42"); got != want {
		t.Fatalf("Commit(\"answer 42\") = %s, want %s", got, want)
	}

	if len(Commit("")) != 64 {
		t.Fatal("Commit should render a 64-char hex digest")
	}
	if got := Commit("x"); got != strings.ToLower(got) {
		t.Fatal("Commit digest should be lowercase hex")
	}
}

func TestCommitNoCollisionsOnCorpus(t *testing.T) {
	corpus := []string{"", "a", "b", "answer", "answer 42", "42", "142", "cat", "concatenate", "café"}
	seen := make(map[string]string)
	for _, s := range corpus {
		d := Commit(s)
		if prev, ok := seen[d]; ok {
			t.Fatalf("collision between %q and %q", prev, s)
		}
		seen[d] = s
	}
}

func TestVerifyHashMode(t *testing.T) {
	plain := "Secret Answer"
	hash := Commit(Normalize(plain))

	variants := []string{
		"Secret Answer",
		"secret answer",
		"  SECRET   ANSWER  ",
		"secret\tanswer",
	}
	for _, v := range variants {
		ok, err := Verify("hash", &hash, nil, v)
		if err != nil {
			t.Fatalf("Verify(%q): unexpected error %v", v, err)
		}
		if !ok {
			t.Errorf("Verify(%q) = false, want true", v)
		}
	}

	ok, err := Verify("hash", &hash, nil, "wrong")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("wrong answer accepted in hash mode")
	}
}

func TestVerifyRegexMode(t *testing.T) {
	cases := []struct {
		name    string
		pattern string
		raw     string
		want    bool
	}{
		{"case insensitive", "^cat$", "Cat", true},
		{"anchored: no substring match", "^cat$", "concatenate", false},
		{"bare pattern is implicitly anchored", "42", "142", false},
		{"bare pattern full match", "42", " 42 ", true},
		{"alternation", "cat|dog", "DOG", true},
		{"matched against normalized text", "answer 42", "ANSWER   42", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Verify("regex", nil, &tc.pattern, tc.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Verify(regex %q, %q) = %v, want %v", tc.pattern, tc.raw, got, tc.want)
			}
		})
	}
}

func TestVerifyBadPattern(t *testing.T) {
	bad := "([unclosed"
	_, err := Verify("regex", nil, &bad, "anything")
	if !errors.Is(err, ErrBadPattern) {
		t.Fatalf("want ErrBadPattern, got %v", err)
	}
}

func TestVerifyUnknownMode(t *testing.T) {
	hash := Commit("x")
	_, err := Verify("plaintext", &hash, nil, "x")
	if !errors.Is(err, ErrUnknownAnswerMode) {
		t.Fatalf("want ErrUnknownAnswerMode, got %v", err)
	}
}

func TestVerifyMissingAnswerMaterial(t *testing.T) {
	if _, err := Verify("hash", nil, nil, "x"); !errors.Is(err, ErrMissingAnswer) {
		t.Errorf("hash mode without stored hash: got %v, want ErrMissingAnswer", err)
	}
	if _, err := Verify("regex", nil, nil, "x"); !errors.Is(err, ErrMissingAnswer) {
		t.Errorf("regex mode without stored pattern: got %v, want ErrMissingAnswer", err)
	}
}
