// Package permission models the OS prompts that gate photo library, camera and
// gallery access.
package permission

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Kind is a protected capability.
type Kind int

const (
	MediaLibrary Kind = iota
	Camera
	GalleryWrite
)

func (k Kind) String() string {
	switch k {
	case MediaLibrary:
		return "media-library"
	case Camera:
		return "camera"
	case GalleryWrite:
		return "gallery-write"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Kinds lists every capability.
func Kinds() []Kind {
	return []Kind{MediaLibrary, Camera, GalleryWrite}
}

// ParseKind accepts the String form of a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if k.String() == strings.TrimSpace(strings.ToLower(s)) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown permission %q", s)
}

// Status is the user's answer.
type Status int

const (
	Undetermined Status = iota
	Granted
	Denied
)

func (s Status) String() string {
	switch s {
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	}
	return "undetermined"
}

// ErrDenied reports a refused permission.
var ErrDenied = errors.New("permission denied")

// Requester asks for a capability. Anything but Granted means no.
type Requester interface {
	Request(ctx context.Context, kind Kind) (Status, error)
}

// Check requests kind and turns a refusal into an error wrapping ErrDenied.
func Check(ctx context.Context, r Requester, kind Kind) error {
	st, err := r.Request(ctx, kind)
	if err != nil {
		return fmt.Errorf("requesting %s permission: %w", kind, err)
	}
	if st != Granted {
		return fmt.Errorf("%w: %s", ErrDenied, kind)
	}
	return nil
}

// Policy answers from a fixed table. Kinds absent from the table are denied.
type Policy map[Kind]Status

func (p Policy) Request(_ context.Context, kind Kind) (Status, error) {
	if st, ok := p[kind]; ok {
		return st, nil
	}
	return Denied, nil
}

// GrantAll returns a Policy granting every kind.
func GrantAll() Policy {
	p := make(Policy)
	for _, k := range Kinds() {
		p[k] = Granted
	}
	return p
}

// ParsePolicy grants the listed kinds. "all" grants everything, "none" or an empty list nothing.
func ParsePolicy(names []string) (Policy, error) {
	p := make(Policy)
	for _, n := range names {
		switch strings.TrimSpace(strings.ToLower(n)) {
		case "":
			continue
		case "all":
			return GrantAll(), nil
		case "none":
			return Policy{}, nil
		}
		k, err := ParseKind(n)
		if err != nil {
			return nil, err
		}
		p[k] = Granted
	}
	return p, nil
}

// PromptFunc asks the user and reports whether they agreed.
type PromptFunc func(ctx context.Context, kind Kind) (bool, error)

// Session prompts once per kind and remembers the answer until Reset.
// Concurrent requests for a kind share one prompt.
type Session struct {
	prompt PromptFunc
	group  singleflight.Group

	mu      sync.Mutex
	answers map[Kind]Status
}

func NewSession(prompt PromptFunc) *Session {
	return &Session{prompt: prompt, answers: make(map[Kind]Status)}
}

func (s *Session) answer(kind Kind) (Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.answers[kind]
	return st, ok
}

// Request answers from memory or prompts. A prompt in flight runs under the
// context of the request that started it.
func (s *Session) Request(ctx context.Context, kind Kind) (Status, error) {
	if st, ok := s.answer(kind); ok {
		return st, nil
	}

	ch := s.group.DoChan(kind.String(), func() (any, error) {
		if st, ok := s.answer(kind); ok {
			return st, nil
		}
		yes, err := s.prompt(ctx, kind)
		if err != nil {
			return Undetermined, err
		}
		st := Denied
		if yes {
			st = Granted
		}
		s.mu.Lock()
		s.answers[kind] = st
		s.mu.Unlock()
		return st, nil
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			return Undetermined, r.Err
		}
		return r.Val.(Status), nil
	case <-ctx.Done():
		return Undetermined, ctx.Err()
	}
}

// Reset forgets every stored answer.
func (s *Session) Reset() {
	s.mu.Lock()
	s.answers = make(map[Kind]Status)
	s.mu.Unlock()
}
