package input

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type Key uint8

const (
	KeyNone Key = iota
	KeySpace
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyLeftAlt
	KeyW
	KeyA
	KeyS
	KeyD
	KeyE
	KeyQ
	KeyF
	KeyC
	KeyX
	KeyUpArrow
	KeyDownArrow
	KeyLeftArrow
	KeyRightArrow
	KeyEscape
	keyCount
)

var keyNames = [keyCount]string{
	KeyNone:        "None",
	KeySpace:       "Space",
	KeyLeftShift:   "LeftShift",
	KeyRightShift:  "RightShift",
	KeyLeftControl: "LeftControl",
	KeyLeftAlt:     "LeftAlt",
	KeyW:           "W",
	KeyA:           "A",
	KeyS:           "S",
	KeyD:           "D",
	KeyE:           "E",
	KeyQ:           "Q",
	KeyF:           "F",
	KeyC:           "C",
	KeyX:           "X",
	KeyUpArrow:     "UpArrow",
	KeyDownArrow:   "DownArrow",
	KeyLeftArrow:   "LeftArrow",
	KeyRightArrow:  "RightArrow",
	KeyEscape:      "Escape",
}

func (k Key) String() string {
	if k >= keyCount {
		return fmt.Sprintf("Key(%d)", uint8(k))
	}
	return keyNames[k]
}

// ParseKey resolves a key name case-insensitively.
func ParseKey(name string) (Key, error) {
	trimmed := strings.TrimSpace(name)
	for k, n := range keyNames {
		if strings.EqualFold(n, trimmed) {
			return Key(k), nil
		}
	}
	return KeyNone, fmt.Errorf("unknown key %q", name)
}

func (k *Key) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseKey(name)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k Key) MarshalYAML() (any, error) {
	return k.String(), nil
}

// KeySet is a bitset of keys.
type KeySet uint32

func Keys(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s = s.With(k)
	}
	return s
}

func (s KeySet) With(k Key) KeySet {
	if k == KeyNone || k >= keyCount {
		return s
	}
	return s | 1<<k
}

func (s KeySet) Has(k Key) bool {
	if k == KeyNone || k >= keyCount {
		return false
	}
	return s&(1<<k) != 0
}
