package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/Iron-Ham/levdist/levenshtein"
	"gopkg.in/yaml.v3"
)

// parsePairs reads batch input. A YAML or JSON document must be a list whose
// items are either two-element lists or mappings with "a" and "b" keys. Any
// other input is read as tab-separated lines, one pair per line.
func parsePairs(data []byte) ([]levenshtein.Pair, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err == nil {
		if root := documentRoot(&doc); root != nil && root.Kind == yaml.SequenceNode {
			return pairsFromSequence(root)
		}
	}
	return pairsFromTSV(data)
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) == 1 {
		return doc.Content[0]
	}
	return nil
}

func pairsFromSequence(seq *yaml.Node) ([]levenshtein.Pair, error) {
	pairs := make([]levenshtein.Pair, 0, len(seq.Content))
	for i, item := range seq.Content {
		var (
			p   levenshtein.Pair
			err error
		)
		switch item.Kind {
		case yaml.SequenceNode:
			p, err = pairFromList(item)
		case yaml.MappingNode:
			p, err = pairFromMapping(item)
		default:
			err = fmt.Errorf("expected a list or mapping")
		}
		if err != nil {
			return nil, fmt.Errorf("item %d (line %d): %w", i, item.Line, err)
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

func pairFromList(n *yaml.Node) (levenshtein.Pair, error) {
	if len(n.Content) != 2 {
		return levenshtein.Pair{}, fmt.Errorf("expected 2 strings, got %d", len(n.Content))
	}
	a, err := scalarString(n.Content[0])
	if err != nil {
		return levenshtein.Pair{}, err
	}
	b, err := scalarString(n.Content[1])
	if err != nil {
		return levenshtein.Pair{}, err
	}
	return levenshtein.Pair{A: a, B: b}, nil
}

func pairFromMapping(n *yaml.Node) (levenshtein.Pair, error) {
	var p levenshtein.Pair
	var seenA, seenB bool
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		s, err := scalarString(val)
		if err != nil {
			return p, fmt.Errorf("key %q: %w", key.Value, err)
		}
		switch key.Value {
		case "a":
			p.A, seenA = s, true
		case "b":
			p.B, seenB = s, true
		default:
			return p, fmt.Errorf("unknown key %q", key.Value)
		}
	}
	if !seenA || !seenB {
		return p, fmt.Errorf("both \"a\" and \"b\" are required")
	}
	return p, nil
}

// scalarString returns the literal text of a scalar, so that values such as
// 007 or yes are compared as written.
func scalarString(n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("expected a string at line %d", n.Line)
	}
	if n.Tag == "!!null" && n.Style == 0 {
		return "", nil
	}
	return n.Value, nil
}

func pairsFromTSV(data []byte) ([]levenshtein.Pair, error) {
	var pairs []levenshtein.Pair
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if text == "" {
			continue
		}
		a, b, ok := strings.Cut(text, "\t")
		if !ok {
			return nil, fmt.Errorf("line %d: expected two tab-separated strings", line)
		}
		pairs = append(pairs, levenshtein.Pair{A: a, B: b})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return pairs, nil
}
