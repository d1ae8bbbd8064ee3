// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido_test

import (
	"fmt"

	"github.com/silvano-dz/decido"
)

// This example shows the basic usage of the package: create a BDD, compute
// some expressions and output the result.
func Example_basic() {
	b, _ := decido.New(6, decido.WithInitialSize(10000))
	// n1 is a set comprising the three variables {x2, x3, x5}. It can also be
	// interpreted as the Boolean expression: x2 & x3 & x5
	n1 := b.Makeset([]int{2, 3, 5})
	// n2 == x1 | !x3 | x4
	n2 := b.Or(b.Ithvar(1), b.NIthvar(3), b.Ithvar(4))
	// n3 == exists x2,x3,x5 . (n2 & x3)
	n3 := b.Exists(b.And(n2, b.Ithvar(3)), n1)
	fmt.Printf("Number of sat. assignments is %s\n", b.CountSatisfyingAssignments(n3))
	// Output:
	// Number of sat. assignments is 48
}

// The following is an example of a callback handler, used in a call to
// Allsat, that counts the number of possible assignments (so a don't-care
// entry is not counted twice).
func Example_allsat() {
	b, _ := decido.New(5)
	n2 := b.Or(b.Ithvar(1), b.NIthvar(3), b.Ithvar(4))
	n := b.Exists(b.And(n2, b.Ithvar(3)), b.Makeset([]int{2, 3}))
	acc := 0
	b.Allsat(n, func(varset []int) error {
		acc++
		return nil
	})
	fmt.Printf("Number of sat. assignments (without don't care) is %d", acc)
	// Output:
	// Number of sat. assignments (without don't care) is 2
}

// The following is an example of a callback handler, used in a call to
// Allnodes, that counts the number of active nodes in the whole BDD.
func Example_allnodes() {
	b, _ := decido.New(5)
	n2 := b.Or(b.Ithvar(1), b.NIthvar(3), b.Ithvar(4))
	n := b.Exists(b.And(n2, b.Ithvar(3)), b.Makeset([]int{2, 3}))
	acc := 0
	count := func(id, level, low, high int) error {
		acc++
		return nil
	}
	b.Allnodes(count)
	fmt.Printf("Number of active nodes in BDD is %d\n", acc)
	acc = 0
	b.Allnodes(count, n)
	fmt.Printf("Number of active nodes in node is %d", acc)
	// Output:
	// Number of active nodes in BDD is 17
	// Number of active nodes in node is 2
}
