// /home/hvpkod/go/src/github.com/hvpkod/rssel/wordlist/wordlist.go
// -*- mode: go; coding: utf-8; -*-
// Created on 10. 03. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-07-30 19:21:05 hvpkod>

// Package wordlist loads the word files the tagger and the filter engine
// consume, i.e. the stopword list and the highlight words.
//
// The format is one word per line, blank lines and lines starting with #
// are ignored, matching is case-insensitive so everything is lowercased on
// load.
package wordlist

import (
	"bufio"
	"os"
	"sort"
	"strings"

	"github.com/blicero/krylib"
)

// Set is a case-insensitive word set.
type Set map[string]bool

// Contains returns true if the word is in the Set.
func (s Set) Contains(word string) bool {
	return s[strings.ToLower(word)]
} // func (s Set) Contains(word string) bool

// Words returns the Set's words in alphabetical order.
func (s Set) Words() []string {
	var words = make([]string, 0, len(s))

	for w := range s {
		words = append(words, w)
	}

	sort.Strings(words)
	return words
} // func (s Set) Words() []string

// Parse reads a word list from a string.
func Parse(text string) Set {
	var (
		set  = make(Set)
		scan = bufio.NewScanner(strings.NewReader(text))
	)

	for scan.Scan() {
		var line = strings.TrimSpace(scan.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		set[strings.ToLower(line)] = true
	}

	return set
} // func Parse(text string) Set

// Load reads a word list from a file. A file that does not exist yields an
// empty Set, not an error.
func Load(path string) (Set, error) {
	var (
		err    error
		exists bool
		raw    []byte
	)

	if exists, err = krylib.Fexists(path); err != nil {
		return nil, err
	} else if !exists {
		return make(Set), nil
	}

	if raw, err = os.ReadFile(path); err != nil {
		return nil, err
	}

	return Parse(string(raw)), nil
} // func Load(path string) (Set, error)

// LoadStopwords reads the stopword list from the given file, falling back
// to the built-in default list if the file does not exist.
func LoadStopwords(path string) (Set, error) {
	var (
		err error
		set Set
	)

	if set, err = Load(path); err != nil {
		return nil, err
	} else if len(set) == 0 {
		return Parse(defaultStopwords), nil
	}

	return set, nil
} // func LoadStopwords(path string) (Set, error)

// The usual suspects. Not meant to be exhaustive, a user who cares ships
// their own stopwords file.
const defaultStopwords = `
about
after
all
also
and
any
are
been
before
being
but
can
could
did
does
for
from
had
has
have
her
here
him
his
how
into
its
just
more
most
new
not
now
off
only
other
our
out
over
said
she
should
some
than
that
the
their
them
then
there
these
they
this
those
too
was
were
what
when
where
which
while
who
why
will
with
would
you
your
`
