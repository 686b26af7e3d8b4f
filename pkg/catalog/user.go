package catalog

import (
	"context"
)

// User is a Web API user profile.
type User struct{ *Entity }

func wrapUser(e *Entity) *User { return &User{e} }

// NewUser returns a user built from r.
func NewUser(r Ref) (*User, error) {
	e, err := entityFromRef(userSchema, r)
	if err != nil {
		return nil, err
	}
	return wrapUser(e), nil
}

// RetrieveFullObject fetches the full user and loads it, replacing stale fields.
func (u *User) RetrieveFullObject(ctx context.Context, c UserAPI) error {
	return u.retrieve(ctx, TierFull, c.GetUser)
}

// GetFullObject returns the full user, fetching it only when a field is missing.
func (u *User) GetFullObject(ctx context.Context, c UserAPI) (Object, error) {
	return u.hydrate(ctx, TierFull, func(ctx context.Context) error { return u.RetrieveFullObject(ctx, c) })
}

// GetSimplifiedObject returns the simplified user. A missing field triggers a full fetch.
func (u *User) GetSimplifiedObject(ctx context.Context, c UserAPI) (Object, error) {
	return u.hydrate(ctx, TierSimplified, func(ctx context.Context) error { return u.RetrieveFullObject(ctx, c) })
}

// GetPlaylists returns one page of the user's public playlists.
func (u *User) GetPlaylists(ctx context.Context, c UserAPI, opts Options) (*Playlists, error) {
	page, err := c.GetUserPlaylists(ctx, u.id, opts)
	if err != nil {
		return nil, err
	}
	out := newPlaylists()
	return out, out.pushObjects(page.Items)
}

// GetAllPlaylists pages through the user's public playlists.
func (u *User) GetAllPlaylists(ctx context.Context, c UserAPI) (*Playlists, error) {
	items, err := u.allPlaylists(ctx, c)
	if err != nil {
		return nil, err
	}
	out := newPlaylists()
	return out, out.pushObjects(items)
}

func (u *User) allPlaylists(ctx context.Context, c UserAPI) ([]Object, error) {
	return collectPages(ctx, Options{}, PageSize, func(ctx context.Context, opts Options) (Page, error) {
		return c.GetUserPlaylists(ctx, u.id, opts)
	})
}

// Follow follows the user as the current user.
func (u *User) Follow(ctx context.Context, c UserAPI) error {
	return c.FollowUsers(ctx, []string{u.id})
}

// Unfollow stops following the user.
func (u *User) Unfollow(ctx context.Context, c UserAPI) error {
	return c.UnfollowUsers(ctx, []string{u.id})
}

// IsFollowed reports whether the current user follows the user.
func (u *User) IsFollowed(ctx context.Context, c UserAPI) (bool, error) {
	res, err := c.IsFollowingUsers(ctx, []string{u.id})
	if err != nil {
		return false, err
	}
	return len(res) > 0 && res[0], nil
}

// Users is an ordered collection of users. Users have no bulk endpoint.
type Users struct{ *Collection[*User] }

func newUsers() *Users { return &Users{newCollection(userSchema, wrapUser)} }

// NewUsers returns a collection of the refs in order.
func NewUsers(refs ...Ref) (*Users, error) {
	us := newUsers()
	if err := us.PushAll(refs...); err != nil {
		return nil, err
	}
	return us, nil
}

// Filter returns a new collection of the members for which keep returns true.
func (us *Users) Filter(keep func(*User) bool) (*Users, error) {
	c, err := us.filter(keep)
	if err != nil {
		return nil, err
	}
	return &Users{c}, nil
}

// Clone returns a copy of the collection sharing its entities.
func (us *Users) Clone() *Users { return &Users{us.clone()} }

// FuzzyFind returns the distinct members whose name matches query, best match
// first.
func (us *Users) FuzzyFind(query string) *Users { return &Users{us.fuzzyFind(query)} }

// RetrieveFullObjects fetches the full object of every member lacking one, in batches.
func (us *Users) RetrieveFullObjects(ctx context.Context, c UserAPI) error {
	return us.resolve(ctx, TierFull, TierFull, perItem(c.GetUser))
}

// GetFullObjects returns the full object of every position, fetching only what is
// missing.
func (us *Users) GetFullObjects(ctx context.Context, c UserAPI) ([]Object, error) {
	if err := us.RetrieveFullObjects(ctx, c); err != nil {
		return nil, err
	}
	return us.snapshots(TierFull), nil
}

// GetSimplifiedObjects returns the simplified object of every position.
func (us *Users) GetSimplifiedObjects(ctx context.Context, c UserAPI) ([]Object, error) {
	if err := us.resolve(ctx, TierSimplified, TierFull, perItem(c.GetUser)); err != nil {
		return nil, err
	}
	return us.snapshots(TierSimplified), nil
}

// SortSafe returns the distinct members ordered by the value at path,
// resolving full objects first when path needs them.
func (us *Users) SortSafe(ctx context.Context, c UserAPI, dir Direction, path string) (*Users, error) {
	out, err := us.sortSafe(ctx, dir, path, perItem(c.GetUser))
	if err != nil {
		return nil, err
	}
	return &Users{out}, nil
}

// GetAllPlaylists concatenates the playlists of every member, in member order.
func (us *Users) GetAllPlaylists(ctx context.Context, c UserAPI) (*Playlists, error) {
	items, err := gatherPages(ctx, us.Collection, func(ctx context.Context, u *User) ([]Object, error) {
		return u.allPlaylists(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	out := newPlaylists()
	return out, out.pushObjects(items)
}

// Follow follows every distinct member.
func (us *Users) Follow(ctx context.Context, c UserAPI) error {
	return us.apply(ctx, c.FollowUsers)
}

// Unfollow stops following every distinct member.
func (us *Users) Unfollow(ctx context.Context, c UserAPI) error {
	return us.apply(ctx, c.UnfollowUsers)
}

// AreFollowed reports, per id, whether the current user follows the member.
func (us *Users) AreFollowed(ctx context.Context, c UserAPI) (map[string]bool, error) {
	return us.flags(ctx, c.IsFollowingUsers)
}

// GetUser fetches a user profile.
func GetUser(ctx context.Context, c UserAPI, id string) (*User, error) {
	u, err := NewUser(ByID(id))
	if err != nil {
		return nil, err
	}
	if err := u.RetrieveFullObject(ctx, c); err != nil {
		return nil, err
	}
	return u, nil
}

// GetMe fetches the profile of the user the client is authorized for.
func GetMe(ctx context.Context, c UserAPI) (*User, error) {
	obj, err := c.GetMe(ctx)
	if err != nil {
		return nil, err
	}
	return NewUser(FromObject(obj))
}
