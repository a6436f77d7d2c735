package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nanogit-vcs/nanogit/object"
)

// hashObjectCmd implements `nanogit hash-object [-w] [-t type] <file>`,
// exercising the Store's write path — named in spec.md §4.2 as existing
// but not exercised by the traversal itself.
type hashObjectCmd struct {
	Type  string `name:"type" short:"t" default:"blob" enum:"blob,tree,commit" help:"Object type"`
	Write bool   `name:"write" short:"w" help:"Write the object into the store, not just print its id"`
	File  string `arg:"" optional:"" help:"File to hash (defaults to stdin)"`
}

func (c *hashObjectCmd) Run(g *globals) error {
	var payload []byte
	var err error
	if c.File == "" || c.File == "-" {
		payload, err = io.ReadAll(os.Stdin)
	} else {
		payload, err = os.ReadFile(c.File)
	}
	if err != nil {
		return err
	}

	kind := object.KindFromString(c.Type)
	if kind == object.InvalidKind {
		return fmt.Errorf("nanogit hash-object: unknown type %q", c.Type)
	}

	if !c.Write {
		fmt.Println(object.Hash(kind, payload).String())
		return nil
	}

	_, st, _, err := openRepository(g.Repo, 0)
	if err != nil {
		return err
	}
	defer st.Close()

	oid, err := st.Write(kind, payload)
	if err != nil {
		return err
	}
	fmt.Println(oid.String())
	return nil
}
