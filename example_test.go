package toml_test

import (
	"fmt"

	toml "github.com/2colours/smol-toml"
)

func ExampleParse() {
	doc, err := toml.Parse([]byte(`name = "Alice"` + "\n"))
	if err != nil {
		panic(err)
	}
	v, _ := doc.Get("name")
	s, _ := v.AsString()
	fmt.Println(s)
	// Output:
	// Alice
}

func ExampleTable_GetDotted() {
	doc, _ := toml.Parse([]byte("[server]\nhost = \"localhost\"\nport = 8080\n"))
	v, _ := doc.GetDotted("server.host")
	s, _ := v.AsString()
	fmt.Println(s)
	// Output:
	// localhost
}

func ExampleValue_AsArray() {
	doc, _ := toml.Parse([]byte("fruits = [\"apple\", \"banana\"]\n"))
	v, _ := doc.Get("fruits")
	elems, _ := v.AsArray()
	for _, e := range elems {
		s, _ := e.AsString()
		fmt.Println(s)
	}
	// Output:
	// apple
	// banana
}
