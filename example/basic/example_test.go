package example

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vippsas/sqlintel"
)

func TestCompleter(t *testing.T) {
	buffer := "select e.en, d.dn from emp e join dept d on d.deptno = e.deptno"
	assert.Equal(t, []sqlintel.Candidate{{Text: "ENAME", ReplaceLength: 2}},
		Completer.Complete(buffer, len("select e.en"), true))
	assert.Equal(t, []sqlintel.Candidate{{Text: "DNAME", ReplaceLength: 2}},
		Completer.Complete(buffer, len("select e.en, d.dn"), true))

	// SCOTT owns no BONUS table, so the synonym is used
	assert.Equal(t, []sqlintel.Candidate{{Text: "SAL", ReplaceLength: 1}},
		Completer.Complete("select b.s from bonus b", len("select b.s"), true))
}

func ExampleCompleter() {
	buffer := "select * from s"
	for _, c := range Completer.Complete(buffer, len(buffer), true) {
		fmt.Println(c.Text, c.ReplaceLength)
	}
	// Output:
	// SALGRADE 1
}
