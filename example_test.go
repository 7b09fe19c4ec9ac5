package calculator_test

import (
	"fmt"
	"log"

	calculator "github.com/MikhailGolubtsov/calculator-demo"
)

func Example() {
	s := calculator.NewSession()
	for _, line := range []string{
		"a = 1",
		"a * 3",
		"b = (a + 2)^2",
		"cos(pi) + b",
	} {
		info, err := s.EvalString(line)
		if err != nil {
			log.Fatal(err)
		}
		if info.Name != "" {
			fmt.Printf("%s = %g\n", info.Name, info.Value)
			continue
		}
		fmt.Printf("%g\n", info.Value)
	}

	// Output:
	// a = 1
	// 3
	// b = 9
	// 8
}

func ExampleSession_EvalString_errors() {
	s := calculator.NewSession()
	for _, line := range []string{"x * 3", "pi = 4", "notFound(2*3)", "1*(1+1"} {
		if _, err := s.EvalString(line); err != nil {
			fmt.Printf("ERROR: %v\n", err)
		}
	}

	// Output:
	// ERROR: undefined variable: "x"
	// ERROR: cannot assign to constant "pi"
	// ERROR: unknown function: "notFound"
	// ERROR: 7: open bracket ( with no close bracket
}
