package document

import (
	"fmt"

	"github.com/erraggy/oasdocs/oaserrors"
	"go.yaml.in/yaml/v4"
)

// MaxNestingDepth bounds how deeply mappings and sequences may nest, counting
// levels reached through aliases. It matches the limit of encoding/json.
const MaxNestingDepth = 10000

// MaxAliasNodes bounds the number of nodes reachable through aliases, counted
// once per alias use.
const MaxAliasNodes = 1 << 20

// Alias-to-node ratios allowed before a document counts as excessively
// aliased. The ratio tightens linearly between the two node counts.
const (
	aliasRatioRangeLow  = 400000
	aliasRatioRangeHigh = 4000000
)

type treeLimits struct {
	maxDepth      int
	maxAliasNodes int
}

var defaultTreeLimits = treeLimits{maxDepth: MaxNestingDepth, maxAliasNodes: MaxAliasNodes}

// treeCheck walks a decoded YAML tree the way the accessors will, following
// aliases, and rejects trees those walks could not finish.
type treeCheck struct {
	limits treeLimits
	source string

	open       map[*yaml.Node]bool
	nodes      int
	aliases    int
	aliasNodes int
}

// checkTree reports a *oaserrors.ParseError for an alias that refers to a
// node enclosing it, and a *oaserrors.ResourceLimitError for nesting or
// alias expansion beyond limits.
func checkTree(root *yaml.Node, source string, limits treeLimits) error {
	c := &treeCheck{
		limits: limits,
		source: source,
		open:   make(map[*yaml.Node]bool),
	}
	return c.visit(root, 0, false)
}

func (c *treeCheck) visit(n *yaml.Node, depth int, viaAlias bool) error {
	if n == nil {
		return nil
	}
	if depth > c.limits.maxDepth {
		return &oaserrors.ResourceLimitError{
			ResourceType: "depth",
			Limit:        int64(c.limits.maxDepth),
			Actual:       int64(depth),
			Message:      fmt.Sprintf("%s: structure too deeply nested at line %d", c.source, n.Line),
		}
	}

	c.nodes++
	if viaAlias {
		c.aliasNodes++
		if c.aliasNodes > c.limits.maxAliasNodes {
			return c.aliasingError(int64(c.limits.maxAliasNodes), int64(c.aliasNodes))
		}
	}

	switch n.Kind {
	case yaml.AliasNode:
		c.aliases++
		if c.aliases > 100 && c.nodes > 1000 && float64(c.aliases)/float64(c.nodes) > allowedAliasRatio(c.nodes) {
			return c.aliasingError(0, 0)
		}
		if n.Alias == nil {
			return nil
		}
		if c.open[n.Alias] {
			return &oaserrors.ParseError{
				Path:    c.source,
				Format:  string(SourceFormatYAML),
				Line:    n.Line,
				Column:  n.Column,
				Message: fmt.Sprintf("alias *%s refers to a node that contains it", n.Value),
			}
		}
		return c.visit(n.Alias, depth, true)

	case yaml.DocumentNode, yaml.MappingNode, yaml.SequenceNode:
		c.open[n] = true
		for _, child := range n.Content {
			if err := c.visit(child, depth+1, viaAlias); err != nil {
				return err
			}
		}
		delete(c.open, n)
	}
	return nil
}

func (c *treeCheck) aliasingError(limit, actual int64) error {
	return &oaserrors.ResourceLimitError{
		ResourceType: "aliases",
		Limit:        limit,
		Actual:       actual,
		Message:      c.source + ": excessive aliasing",
	}
}

func allowedAliasRatio(nodes int) float64 {
	switch {
	case nodes <= aliasRatioRangeLow:
		return 0.99
	case nodes >= aliasRatioRangeHigh:
		return 0.10
	default:
		span := float64(aliasRatioRangeHigh - aliasRatioRangeLow)
		return 0.99 - 0.89*(float64(nodes-aliasRatioRangeLow)/span)
	}
}
