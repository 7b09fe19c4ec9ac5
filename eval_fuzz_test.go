//go:build go1.18
// +build go1.18

package calculator_test

import (
	"testing"

	calculator "github.com/MikhailGolubtsov/calculator-demo"
)

func FuzzEvalString(f *testing.F) {
	f.Add("cos(pi)")
	f.Add("a = 1")
	f.Add("1/0")
	f.Add("notFound(2*3)")
	f.Fuzz(func(t *testing.T, src string) {
		s := calculator.NewSession()
		// Evaluate twice: a line that succeeds once must not make the
		// session reject or change the same pure line later, and an
		// assignment must stay visible.
		a, err1 := s.EvalString(src)
		b, err2 := s.EvalString(src)
		if (err1 == nil) != (err2 == nil) {
			t.Errorf("inconsistent errors for %q: %v then %v", src, err1, err2)
		}
		if err1 != nil || err2 != nil {
			return
		}
		if a.Name != b.Name {
			t.Errorf("inconsistent names for %q: %q then %q", src, a.Name, b.Name)
		}
	})
}
