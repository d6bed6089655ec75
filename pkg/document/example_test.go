package document_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/flowbox/pkg/core/flow"
	"github.com/matzehuels/flowbox/pkg/document"
)

func Example() {
	src := `
[width]
mode = "at_most"
size = 100

[[boxes]]
id = "a"
width = 30
height = 10

[[boxes]]
id = "b"
width = 40
height = 10

[[boxes]]
id = "c"
width = 50
height = 10
`
	doc, err := document.ReadDocument(strings.NewReader(src), document.FormatTOML)
	if err != nil {
		panic(err)
	}
	width, height, err := doc.Constraints()
	if err != nil {
		panic(err)
	}
	m, placements, err := flow.Run(doc.Children(), width, height)
	if err != nil {
		panic(err)
	}

	l := document.FromMeasurement(doc, m, placements)
	for _, line := range l.Lines {
		fmt.Println(line.Boxes, line.Width)
	}
	fmt.Printf("%dx%d\n", l.Width, l.Height)
	// Output:
	// [a b] 70
	// [c] 50
	// 70x20
}
