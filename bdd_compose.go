// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

import "fmt"

// composerID is a process-wide monotonic counter, one tick per Composer
// built by NewComposer, Replace or Restrict; it backs the cache-invalidation
// trick in cache.go's composeBegin.
var composerID = 1

const noImage = -1

// Composer names, per variable level, the node that should take its place
// during a Compose/Restrict/Replace traversal. A single mechanism serves all three operations: Replace maps a
// level to another variable's literal, Restrict maps it to a constant, and
// Compose maps it to an arbitrary node.
type Composer struct {
	id    int
	image []int
	last  int32
}

// Image reports the substitute node for level, if any.
func (c *Composer) Image(level int32) (int, bool) {
	if level > c.last || c.image[level] == noImage {
		return 0, false
	}
	return c.image[level], true
}

// Id uniquely identifies this Composer for cache invalidation.
func (c *Composer) Id() int { return c.id }

func newComposer(varnum int) *Composer {
	img := make([]int, varnum)
	for i := range img {
		img[i] = noImage
	}
	id := composerID
	composerID++
	return &Composer{id: id, image: img, last: -1}
}

func (c *Composer) set(level int, node int) {
	c.image[level] = node
	if int32(level) > c.last {
		c.last = int32(level)
	}
}

// NewComposer builds a Composer substituting vars[k] with images[k] for each
// k. Variables may repeat images (unlike Replace, which
// requires a permutation), but may not repeat in vars itself.
func (b *BDD) NewComposer(vars []int, images []Node) (*Composer, error) {
	if len(vars) != len(images) {
		return nil, fmt.Errorf("decido: mismatched slice lengths in NewComposer (%d vars, %d images)", len(vars), len(images))
	}
	c := newComposer(int(b.t.varnum))
	seen := make(map[int]bool, len(vars))
	for k, v := range vars {
		if v < 0 || v >= int(b.t.varnum) {
			return nil, fmt.Errorf("decido: variable %d out of range in NewComposer", v)
		}
		if seen[v] {
			return nil, fmt.Errorf("decido: duplicate variable %d in NewComposer", v)
		}
		seen[v] = true
		if err := b.checkptr(images[k]); err != nil {
			return nil, err
		}
		c.set(v, int(images[k]))
	}
	return c, nil
}

// Compose substitutes every variable named in c with its image; unlike
// Replace the images need not be variables, so Compose
// can inline one function inside another.
func (b *BDD) Compose(n Node, c *Composer) Node {
	return b.runCompose(n, c)
}

// Restrict fixes the listed variables to constant values and simplifies n
// accordingly, returning an error-sentinel node if
// vars and values disagree in length or name an out-of-range variable.
func (b *BDD) Restrict(n Node, vars []int, values []bool) Node {
	if len(vars) != len(values) {
		b.fail(ErrInvalidArgument, "mismatched slice lengths in Restrict (%d vars, %d values)", len(vars), len(values))
		return Node(invalidNode)
	}
	c := newComposer(int(b.t.varnum))
	for k, v := range vars {
		if v < 0 || v >= int(b.t.varnum) {
			b.fail(ErrInvalidArgument, "variable %d out of range in Restrict", v)
			return Node(invalidNode)
		}
		if values[k] {
			c.set(v, 1)
		} else {
			c.set(v, 0)
		}
	}
	return b.runCompose(n, c)
}

// Replace substitutes oldvars[k] with newvars[k] for every k, a pure
// relabeling: oldvars and newvars must each list distinct
// variables, and a variable may not appear in both roles unless it maps to
// itself.
func (b *BDD) Replace(n Node, oldvars, newvars []int) Node {
	if len(oldvars) != len(newvars) {
		b.fail(ErrInvalidArgument, "mismatched slice lengths in Replace (%d old, %d new)", len(oldvars), len(newvars))
		return Node(invalidNode)
	}
	c := newComposer(int(b.t.varnum))
	seenOld := make(map[int]bool, len(oldvars))
	unchangedImage := make([]int, b.t.varnum)
	for k := range unchangedImage {
		unchangedImage[k] = k
	}
	for k, v := range oldvars {
		w := newvars[k]
		if v < 0 || v >= int(b.t.varnum) || w < 0 || w >= int(b.t.varnum) {
			b.fail(ErrInvalidArgument, "variable out of range in Replace (%d -> %d)", v, w)
			return Node(invalidNode)
		}
		if seenOld[v] {
			b.fail(ErrInvalidArgument, "duplicate variable %d in oldvars", v)
			return Node(invalidNode)
		}
		seenOld[v] = true
		unchangedImage[v] = w
		c.set(v, int(b.Ithvar(w)))
	}
	for _, w := range newvars {
		if unchangedImage[w] != w {
			b.fail(ErrInvalidArgument, "variable %d in newvars also occurs in oldvars", w)
			return Node(invalidNode)
		}
	}
	return b.runCompose(n, c)
}

func (b *BDD) runCompose(n Node, c *Composer) Node {
	if b.checkptr(n) != nil {
		return Node(invalidNode)
	}
	b.t.initref()
	b.t.pushref(int(n))
	b.t.composeBegin(c)
	res := b.t.composeNode(int(n), c)
	b.t.popref(1)
	return Node(res)
}

// composeNode is the single traversal backing Compose, Restrict and Replace
//: at a node whose level has a substitute image g, the result is
// ite(g, high', low') -- the standard cofactor expansion for substituting one
// variable by an arbitrary function; everywhere else the node is just
// rebuilt with its (possibly substituted) children. Levels above c.last
// cannot contain a substituted variable and are returned unchanged.
func (t *table) composeNode(n int, c *Composer) int {
	if n < 2 {
		return n
	}
	lvl := t.level(n)
	if lvl > c.last {
		return n
	}
	if res, ok := t.composeLookup(n); ok {
		return res
	}
	image, hasImage := c.Image(lvl)
	low := t.pushref(t.composeNode(t.low(n), c))
	high := t.pushref(t.composeNode(t.high(n), c))
	var res int
	if hasImage {
		res = t.ite(image, high, low)
	} else {
		var err error
		res, err = t.makenode(lvl, []int{low, high}, nil)
		if err != nil && err != errReset && err != errResize {
			res = invalidNode
		}
	}
	t.popref(2)
	return t.composeStore(n, res)
}
