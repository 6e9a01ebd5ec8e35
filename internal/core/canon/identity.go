package canon

import "context"

// Kind is the closed set of resource kinds a report can target
type Kind uint8

const (
	// KindUnrelated is any page that is neither a work nor a user profile
	KindUnrelated Kind = iota

	// KindWork is a posted work and all of its subpages
	KindWork

	// KindUser is a user profile and all of its subpages
	KindUser
)

// String implements fmt.Stringer
func (k Kind) String() string {
	switch k {
	case KindWork:
		return "work"
	case KindUser:
		return "user"
	default:
		return "unrelated"
	}
}

// Identity names the resource a canonical URL refers to
// ComparisonKey groups URL variants of the same resource, Exact reports
// whether the path ends at the resource key with no sub-resource suffix
type Identity struct {
	Kind       Kind
	PrimaryKey string
	Exact      bool
}

// ComparisonKey is the grouping key kind:primaryKey
// scheme, query, fragment, and trailing subpaths never contribute
func (id Identity) ComparisonKey() string {
	return id.Kind.String() + ":" + id.PrimaryKey
}

// ChapterResolver maps a bare chapter id to its owning work id
type ChapterResolver interface {
	OwningWork(ctx context.Context, chapterID string) (workID string, ok bool, err error)
}

// matcher inspects path segments and either claims the URL or passes
// first claim wins, evaluation order is fixed
type matcher func(ctx context.Context, u URL, chapters ChapterResolver) (Identity, URL, bool, error)

var matchers = []matcher{
	matchWork,
	matchChapter,
	matchUser,
}

// Extract resolves the resource identity for a canonical URL
// The returned URL is normally u unchanged, except for bare chapter links
// which are rewritten to their fully qualified /works/{workID}/chapters/{id}/
// form when the chapter is known
func Extract(ctx context.Context, u URL, chapters ChapterResolver) (Identity, URL, error) {
	for _, m := range matchers {
		id, out, ok, err := m(ctx, u, chapters)
		if err != nil {
			return Identity{}, u, err
		}
		if ok {
			return id, out, nil
		}
	}
	return Identity{Kind: KindUnrelated, PrimaryKey: u.PathString(), Exact: true}, u, nil
}

// matchWork claims /works/{id} anywhere in the path, which covers the
// /collections/{name}/works/{id} and /users/{name}/works/{id} nestings
func matchWork(_ context.Context, u URL, _ ChapterResolver) (Identity, URL, bool, error) {
	for i, seg := range u.Path {
		if seg != "works" || i+1 >= len(u.Path) {
			continue
		}
		id := u.Path[i+1]
		if !allDigits(id) {
			continue
		}
		return Identity{
			Kind:       KindWork,
			PrimaryKey: id,
			Exact:      i+2 == len(u.Path),
		}, u, true, nil
	}
	return Identity{}, u, false, nil
}

// matchChapter claims bare /chapters/{id} links with no enclosing work
// A known chapter rewrites the URL to the qualified form, an unknown one
// falls through to Unrelated with the URL kept as is
func matchChapter(ctx context.Context, u URL, chapters ChapterResolver) (Identity, URL, bool, error) {
	if len(u.Path) < 2 || u.Path[0] != "chapters" || !allDigits(u.Path[1]) {
		return Identity{}, u, false, nil
	}
	if chapters == nil {
		return Identity{}, u, false, nil
	}
	workID, ok, err := chapters.OwningWork(ctx, u.Path[1])
	if err != nil {
		return Identity{}, u, false, err
	}
	if !ok {
		return Identity{}, u, false, nil
	}
	rewritten := u
	rewritten.Path = append([]string{"works", workID}, u.Path...)
	return Identity{Kind: KindWork, PrimaryKey: workID, Exact: false}, rewritten, true, nil
}

// matchUser claims /users/{name} and the admin variant /admin/users/{name}
// both map to the same identity, names compare case sensitively
func matchUser(_ context.Context, u URL, _ ChapterResolver) (Identity, URL, bool, error) {
	segs := u.Path
	if len(segs) >= 2 && segs[0] == "admin" && segs[1] == "users" {
		segs = segs[1:]
	}
	if len(segs) < 2 || segs[0] != "users" {
		return Identity{}, u, false, nil
	}
	return Identity{
		Kind:       KindUser,
		PrimaryKey: segs[1],
		Exact:      len(segs) == 2,
	}, u, true, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
