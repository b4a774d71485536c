package midiio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/beatsmith/beatsmith/internal/drums"
)

// LoadLibrary builds a fragment library from a loop directory tree with
// the layout start/, mid/regular/, mid/transition/small/,
// mid/transition/big/ and end/. A missing category directory leaves that
// category empty; the sequencer fails only if it actually draws from it.
func LoadLibrary(root string) (drums.Library, error) {
	var lib drums.Library
	var err error

	if lib.Start, err = loadCategory(filepath.Join(root, "start")); err != nil {
		return lib, err
	}
	if lib.MidRegular, err = loadCategory(filepath.Join(root, "mid", "regular")); err != nil {
		return lib, err
	}
	if lib.MidTransitionSmall, err = loadCategory(filepath.Join(root, "mid", "transition", "small")); err != nil {
		return lib, err
	}
	if lib.MidTransitionBig, err = loadCategory(filepath.Join(root, "mid", "transition", "big")); err != nil {
		return lib, err
	}
	if lib.End, err = loadCategory(filepath.Join(root, "end")); err != nil {
		return lib, err
	}
	return lib, nil
}

func loadCategory(dir string) ([]drums.Fragment, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var frags []drums.Fragment
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".mid") {
			continue
		}
		frag, err := ReadFragment(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		frags = append(frags, frag)
	}
	return frags, nil
}
