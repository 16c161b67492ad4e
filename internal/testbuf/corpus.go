package testbuf

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/rawtransfer/buffer"
	"github.com/wippyai/rawtransfer/schema"
)

//go:embed testdata/corpus.yaml
var corpusYAML []byte

// Case is one corpus entry: a source text and the tree a producer would
// write for it.
type Case struct {
	Name     string `yaml:"name"`
	Source   string `yaml:"source"`
	Flavor   string `yaml:"flavor"`
	Program  M      `yaml:"program"`
	Comments []any  `yaml:"comments"`
	Module   M      `yaml:"module"`
	Errors   []any  `yaml:"errors"`

	// LazyTrace is the enter/exit trace a buffer walk produces when hooks
	// restructure the decoded tree so that walking it visits other nodes.
	// Empty means both traces match.
	LazyTrace []string `yaml:"lazyTrace"`
}

// Corpus returns the embedded cases.
func Corpus() ([]Case, error) {
	var cases []Case
	if err := yaml.Unmarshal(corpusYAML, &cases); err != nil {
		return nil, fmt.Errorf("testbuf: corpus: %w", err)
	}
	return cases, nil
}

// FlavorOf returns the case flavor, plain when unset.
func (c Case) FlavorOf() schema.Flavor {
	f, _ := schema.ParseFlavor(c.Flavor)
	return f
}

// Root wraps the case program into a RawTransferData value.
func (c Case) Root() M {
	root := M{"program": c.Program, "comments": c.Comments}
	if c.Module != nil {
		root["module"] = c.Module
	}
	if c.Errors != nil {
		root["errors"] = c.Errors
	}
	return root
}

// Encode builds the case buffer against s.
func (c Case) Encode(s *schema.Schema) (*buffer.Buffer, error) {
	buf, err := New(s, c.Source, c.FlavorOf()).Encode(c.Root())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, err)
	}
	return buf, nil
}
