package object

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nanogit-vcs/nanogit/plumbing"
)

// Signature identifies a commit's author or committer: a name, an email,
// and the instant they acted, expressed as the Unix timestamp Git stores
// plus the author's own timezone offset in minutes east of UTC.
type Signature struct {
	Name            string
	Email           string
	TimestampSecond int64
	TZOffsetMinutes int
}

// When renders the signature's timestamp as a time.Time in its own
// timezone, the way Git would display it.
func (s Signature) When() time.Time {
	loc := time.FixedZone("", s.TZOffsetMinutes*60)
	return time.Unix(s.TimestampSecond, 0).In(loc)
}

// String encodes a Signature in commit-header form:
//
//	<name> <email> <epoch> <tzoff>
func (s Signature) String() string {
	sign := '+'
	off := s.TZOffsetMinutes
	if off < 0 {
		sign = '-'
		off = -off
	}
	return fmt.Sprintf("%s <%s> %d %c%02d%02d", s.Name, s.Email, s.TimestampSecond, sign, off/60, off%60)
}

// ParseSignature decodes the value half of an "author"/"committer"
// header line (everything after the field name and one space).
func ParseSignature(b []byte) (Signature, error) {
	open := bytes.IndexByte(b, '<')
	close := bytes.IndexByte(b, '>')
	if open < 0 || close < 0 || close < open {
		return Signature{}, &plumbing.MalformedObjectError{Reason: "signature missing <email>"}
	}
	name := strings.TrimRight(string(b[:open]), " ")
	email := string(b[open+1 : close])

	rest := strings.TrimSpace(string(b[close+1:]))
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return Signature{}, &plumbing.MalformedObjectError{Reason: "signature missing timestamp/timezone"}
	}
	ts, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Signature{}, &plumbing.MalformedObjectError{Reason: "signature timestamp is not decimal: " + fields[0]}
	}
	tz, err := parseTZOffset(fields[1])
	if err != nil {
		return Signature{}, err
	}
	return Signature{Name: name, Email: email, TimestampSecond: ts, TZOffsetMinutes: tz}, nil
}

func parseTZOffset(s string) (int, error) {
	if len(s) != 5 || (s[0] != '+' && s[0] != '-') {
		return 0, &plumbing.MalformedObjectError{Reason: "timezone offset must be [+-]HHMM: " + s}
	}
	hh, err1 := strconv.Atoi(s[1:3])
	mm, err2 := strconv.Atoi(s[3:5])
	if err1 != nil || err2 != nil {
		return 0, &plumbing.MalformedObjectError{Reason: "timezone offset must be [+-]HHMM: " + s}
	}
	total := hh*60 + mm
	if s[0] == '-' {
		total = -total
	}
	return total, nil
}

// Commit is the only object kind the revision walker parses. Parent order
// is semantically meaningful — index 0 is the current-branch parent — and
// is preserved through Encode/ParseCommit exactly as declared.
type Commit struct {
	Hash      plumbing.ObjectId
	Tree      plumbing.ObjectId
	Parents   []plumbing.ObjectId
	Author    Signature
	Committer Signature
	Message   string
}

// NumParents returns the number of parents; 0 for a root commit, 1 for a
// normal commit, 2 for a simple merge, 3+ for an octopus merge.
func (c *Commit) NumParents() int {
	return len(c.Parents)
}

// Encode writes c's canonical payload (everything the envelope hashes
// besides the "commit <size>\0" header), in grammar order: tree, parents,
// author, committer, blank line, message verbatim.
func (c *Commit) Encode() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", c.Tree)
	for _, p := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", p)
	}
	fmt.Fprintf(&buf, "author %s\n", c.Author)
	fmt.Fprintf(&buf, "committer %s\n", c.Committer)
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	return buf.Bytes()
}

// ParseCommit decodes a commit payload per spec.md's grammar. It fails
// with MalformedObjectError on a missing tree, non-hex ids, a malformed
// timestamp, or a missing author/committer line. Unknown header lines
// before the blank line are preserved only in that they do not abort
// parsing; this implementation does not otherwise retain them, since the
// walker and cache never consult anything but parents and author time.
func ParseCommit(payload []byte) (*Commit, error) {
	c := &Commit{}
	r := bufio.NewReader(bytes.NewReader(payload))

	var sawTree, sawAuthor, sawCommitter bool
	for {
		line, err := r.ReadString('\n')
		atEOF := false
		if err != nil {
			// A header section lacking its trailing blank line is
			// truncated input, not a clean EOF.
			atEOF = true
		}
		text := strings.TrimSuffix(line, "\n")
		if text == "" {
			if atEOF {
				return nil, &plumbing.MalformedObjectError{Reason: "commit has no blank line after headers"}
			}
			break
		}
		sp := strings.IndexByte(text, ' ')
		if sp < 0 {
			if atEOF {
				return nil, &plumbing.MalformedObjectError{Reason: "truncated commit header"}
			}
			continue // tolerate stray header lines with no value, forward-compat
		}
		key, value := text[:sp], text[sp+1:]
		switch key {
		case "tree":
			oid, err := plumbing.ParseObjectId(value)
			if err != nil {
				return nil, err
			}
			c.Tree = oid
			sawTree = true
		case "parent":
			oid, err := plumbing.ParseObjectId(value)
			if err != nil {
				return nil, err
			}
			c.Parents = append(c.Parents, oid)
		case "author":
			sig, err := ParseSignature([]byte(value))
			if err != nil {
				return nil, err
			}
			c.Author = sig
			sawAuthor = true
		case "committer":
			sig, err := ParseSignature([]byte(value))
			if err != nil {
				return nil, err
			}
			c.Committer = sig
			sawCommitter = true
		default:
			// Unknown header: tolerated per forward-compat.
		}
		if atEOF {
			return nil, &plumbing.MalformedObjectError{Reason: "commit has no blank line after headers"}
		}
	}
	if !sawTree {
		return nil, &plumbing.MalformedObjectError{Reason: "commit missing tree"}
	}
	if !sawAuthor {
		return nil, &plumbing.MalformedObjectError{Reason: "commit missing author"}
	}
	if !sawCommitter {
		return nil, &plumbing.MalformedObjectError{Reason: "commit missing committer"}
	}

	rest, err := readRemainder(r)
	if err != nil {
		return nil, err
	}
	c.Message = rest
	return c, nil
}

func readRemainder(r *bufio.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return "", &plumbing.MalformedObjectError{Reason: "failed reading commit message: " + err.Error()}
	}
	return buf.String(), nil
}

// Subject returns the first line of the commit message.
func (c *Commit) Subject() string {
	if i := strings.IndexAny(c.Message, "\r\n"); i != -1 {
		return c.Message[:i]
	}
	return c.Message
}

// DateFormat is the date layout of Git's default log output, shared by Commit.String() and
// any caller (e.g. the CLI's oneline log output) that needs the same
// "Mon Jan 02 15:04:05 2006 -0700" layout without re-deriving it.
const DateFormat = "Mon Jan 02 15:04:05 2006 -0700"

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = "    " + l
		}
	}
	return strings.Join(lines, "\n")
}

// String renders a commit the way "git log" shows one entry: hash,
// author, date, and an indented message body.
func (c *Commit) String() string {
	return fmt.Sprintf("commit %s\nAuthor: %s <%s>\nDate:   %s\n\n%s\n",
		c.Hash, c.Author.Name, c.Author.Email, c.Author.When().Format(DateFormat), indent(c.Message))
}
