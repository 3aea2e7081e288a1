package memres

import (
	"flag"

	"github.com/c2h5oh/datasize"
	"github.com/pkg/errors"
)

// ArenaConfig is the configuration block for an arena allocator.
type ArenaConfig struct {
	BlockSize datasize.ByteSize `yaml:"block_size"`
	AutoSize  datasize.ByteSize `yaml:"auto_size"`
	MaxSize   datasize.ByteSize `yaml:"max_size"`
}

// RegisterFlags registers the arena flags under the "arena." prefix.
func (c *ArenaConfig) RegisterFlags(f *flag.FlagSet) {
	c.RegisterFlagsWithPrefix("arena.", f)
}

// RegisterFlagsWithPrefix registers the arena flags with a prefix.
func (c *ArenaConfig) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	f.TextVar(&c.BlockSize, prefix+"block-size", datasize.ByteSize(DefaultBlockSize), "Size of each block the arena carves chunks from.")
	f.TextVar(&c.AutoSize, prefix+"auto-size", datasize.ByteSize(DefaultAutoSize), "Default first allocation of a resource. Must not exceed the block size.")
	f.TextVar(&c.MaxSize, prefix+"max-size", datasize.ByteSize(0), "Maximum bytes the arena may hold. 0 means unbounded.")
}

// Validate validates the arena settings.
func (c *ArenaConfig) Validate() error {
	if c.BlockSize == 0 {
		return errors.New("arena block size must be positive")
	}
	if c.BlockSize.Bytes() > maxAllocSize {
		return errors.Errorf("arena block size %s is too large", c.BlockSize.HumanReadable())
	}
	if c.AutoSize > c.BlockSize {
		return errors.Errorf("arena auto size %s exceeds block size %s", c.AutoSize.HumanReadable(), c.BlockSize.HumanReadable())
	}
	if c.MaxSize != 0 && c.MaxSize < c.BlockSize {
		return errors.Errorf("arena max size %s is below block size %s", c.MaxSize.HumanReadable(), c.BlockSize.HumanReadable())
	}
	return nil
}

// NewArenaFromConfig validates cfg and creates an Arena from it.
func NewArenaFromConfig(cfg ArenaConfig) (*Arena, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid arena config")
	}
	return NewArena(int(cfg.BlockSize.Bytes()),
		WithAutoSize(int(cfg.AutoSize.Bytes())),
		WithMaxSize(int(min(cfg.MaxSize.Bytes(), uint64(maxAllocSize)))),
	), nil
}
