// pdf.js/type1 - decoding of embedded Type 1 font programs
// Copyright (C) 2026  The pdf.js Go authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package type1

import (
	"sync"
)

// Registry memoizes decoded fonts.  Fonts are stored under the identifier
// used to request them, and under the FontName declared by the font
// program.
//
// A Registry is safe for concurrent use.  Each identifier is decoded at most
// once: concurrent requests for the same identifier wait for the first one
// to complete and then share its result.
type Registry struct {
	mu    sync.Mutex
	fonts map[string]*registryEntry
}

type registryEntry struct {
	done chan struct{}
	font *Font
	err  error
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		fonts: make(map[string]*registryEntry),
	}
}

// Do returns the font stored under id.  If id is not yet known, decode is
// called to obtain the font.  The result of decode, including any error, is
// stored under id and, if decoding succeeds, also under the font's FontName
// unless that name is already taken.
func (r *Registry) Do(id string, decode func() (*Font, error)) (*Font, error) {
	r.mu.Lock()
	if e, ok := r.fonts[id]; ok {
		r.mu.Unlock()
		<-e.done
		return e.font, e.err
	}
	e := &registryEntry{done: make(chan struct{})}
	r.fonts[id] = e
	r.mu.Unlock()

	defer func() {
		if e.font == nil && e.err == nil {
			e.err = errDecodeAborted
		}
		close(e.done)
	}()

	e.font, e.err = decode()

	if e.err == nil && e.font != nil && e.font.FontInfo != nil {
		name := e.font.FontName
		r.mu.Lock()
		if _, exists := r.fonts[name]; !exists && name != "" {
			r.fonts[name] = e
		}
		r.mu.Unlock()
	}

	return e.font, e.err
}

// Lookup returns the font stored under the given identifier or FontName.
// Fonts which are still being decoded are not returned.
func (r *Registry) Lookup(name string) (*Font, bool) {
	r.mu.Lock()
	e, ok := r.fonts[name]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}
	select {
	case <-e.done:
		return e.font, e.font != nil
	default:
		return nil, false
	}
}

// Has reports whether a decoded font is stored under the given identifier
// or FontName.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Len returns the number of identifiers and font names in the registry.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.fonts)
}
