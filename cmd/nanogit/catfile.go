package main

import (
	"fmt"
	"os"

	"github.com/nanogit-vcs/nanogit/object"
	"github.com/nanogit-vcs/nanogit/plumbing"
)

// catFileCmd implements `nanogit cat-file <type> <object>`, a minimal
// plumbing command exercising the Store's read path and the Codec's
// decode path directly, outside of any walk.
type catFileCmd struct {
	Type   string `arg:"" enum:"blob,tree,commit,-p" help:"Expected object type, or -p to auto-print"`
	Object string `arg:"" help:"Object id (40-character hex)"`
}

func (c *catFileCmd) Run(g *globals) error {
	_, st, _, err := openRepository(g.Repo, 0)
	if err != nil {
		return err
	}
	defer st.Close()

	oid, err := plumbing.ParseObjectId(c.Object)
	if err != nil {
		return err
	}

	kind, payload, err := st.Load(oid)
	if err != nil {
		return err
	}
	if c.Type != "-p" && kind.String() != c.Type {
		return plumbing.NewTypeMismatchError(oid, c.Type, kind.String())
	}

	switch kind {
	case object.CommitKind:
		commit, err := object.ParseCommit(payload)
		if err != nil {
			return err
		}
		commit.Hash = oid
		fmt.Print(commit.String())
	case object.TreeKind:
		tree, err := object.ParseTree(payload)
		if err != nil {
			return err
		}
		for _, e := range tree.Entries {
			fmt.Printf("%06o %s %s\t%s\n", uint32(e.Mode), kindOfMode(e.Mode), e.Oid, e.Name)
		}
	case object.BlobKind:
		_, _ = os.Stdout.Write(payload)
	default:
		return fmt.Errorf("nanogit cat-file: unsupported object kind")
	}
	return nil
}

func kindOfMode(m object.FileMode) string {
	if m.IsDir() {
		return "tree"
	}
	return "blob"
}
