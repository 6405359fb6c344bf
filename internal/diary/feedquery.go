package diary

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	accountmodels "io.winapps.communitydiary/internal/models/account"
)

// PageSize is the fixed page size for listings and the feed limit.
const PageSize = 20

// Axis is the single filter dimension applied to a listing query. Axes are
// mutually exclusive; exactly one applies per query.
type Axis int

const (
	AxisGlobal Axis = iota
	AxisAuthor
	AxisFriends
	AxisNearby
	AxisLanguage
)

func (a Axis) String() string {
	switch a {
	case AxisAuthor:
		return "author"
	case AxisFriends:
		return "friends"
	case AxisNearby:
		return "nearby"
	case AxisLanguage:
		return "language"
	default:
		return "global"
	}
}

// ListParams selects the axis by which parameter is supplied, evaluated in
// precedence order: author > friends > nearby > language > global.
type ListParams struct {
	DisplayName string
	Friends     bool
	Nearby      bool
	Language    string

	// ViewerUID is the resolved viewer identity, empty for anonymous
	// requests. Required for the friends and nearby axes.
	ViewerUID string

	Page int
}

// Axis resolves the filter axis for these parameters. Friends and nearby
// listings without a resolved viewer are a precondition failure, not a
// query error.
func (p ListParams) Axis() (Axis, error) {
	switch {
	case p.DisplayName != "":
		return AxisAuthor, nil
	case p.Friends:
		if p.ViewerUID == "" {
			return AxisFriends, ErrAuthRequired
		}
		return AxisFriends, nil
	case p.Nearby:
		if p.ViewerUID == "" {
			return AxisNearby, ErrAuthRequired
		}
		return AxisNearby, nil
	case p.Language != "":
		return AxisLanguage, nil
	default:
		return AxisGlobal, nil
	}
}

// pageWindow maps a 1-based page number onto LIMIT/OFFSET. Pages below 1
// clamp to 1; pages past the end yield empty, non-error results.
func pageWindow(page int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	return PageSize, (page - 1) * PageSize
}

// SocialSets supplies the opaque friends and nearby membership sets. How
// membership is computed is outside the diary core.
type SocialSets interface {
	FriendIDs(ctx context.Context, uid string) ([]string, error)
	NearbyIDs(ctx context.Context, uid string) ([]string, error)
}

// FeedQuery builds filtered, ordered, paginated entry listings and the
// syndication feed. Read-only: it observes committed, visible state.
type FeedQuery struct {
	db     *pgxpool.Pool
	users  *UserDirectory
	social SocialSets
}

func NewFeedQuery(db *pgxpool.Pool, users *UserDirectory, social SocialSets) *FeedQuery {
	return &FeedQuery{db: db, users: users, social: social}
}

// entryConditions builds the axis-specific WHERE conditions on top of the
// visibility filter. authorUID is the resolved author for the author axis;
// memberUIDs the friend/nearby set. Argument placeholders start at
// firstArg.
func entryConditions(axis Axis, authorUID string, memberUIDs []string, language string, firstArg int) (conditions []string, args []interface{}) {
	conditions = []string{"e.visible = TRUE"}
	n := firstArg

	switch axis {
	case AxisAuthor:
		conditions = append(conditions, "e.user_uid = $"+strconv.Itoa(n))
		args = append(args, authorUID)
		n++
	case AxisFriends, AxisNearby:
		conditions = append(conditions, "e.user_uid = ANY($"+strconv.Itoa(n)+")")
		args = append(args, memberUIDs)
		n++
	case AxisLanguage:
		conditions = append(conditions,
			"e.language_code = $"+strconv.Itoa(n),
			"u.status IN ($"+strconv.Itoa(n+1)+", $"+strconv.Itoa(n+2)+")")
		args = append(args, language, accountmodels.StatusActive, accountmodels.StatusConfirmed)
		n += 3
	default: // AxisGlobal
		conditions = append(conditions,
			"u.status IN ($"+strconv.Itoa(n)+", $"+strconv.Itoa(n+1)+")")
		args = append(args, accountmodels.StatusActive, accountmodels.StatusConfirmed)
		n += 2
	}

	return conditions, args
}

// ListEntries answers a filtered, paginated listing. Entries come back
// newest first, ties broken by id for a deterministic order.
func (q *FeedQuery) ListEntries(ctx context.Context, p ListParams) ([]accountmodels.Entry, error) {
	axis, err := p.Axis()
	if err != nil {
		return nil, err
	}

	var authorUID string
	var memberUIDs []string

	switch axis {
	case AxisAuthor:
		author, err := q.users.GetActiveByDisplayName(ctx, p.DisplayName)
		if err != nil {
			return nil, err
		}
		authorUID = author.UID
	case AxisFriends:
		memberUIDs, err = q.social.FriendIDs(ctx, p.ViewerUID)
		if err != nil {
			return nil, err
		}
	case AxisNearby:
		memberUIDs, err = q.social.NearbyIDs(ctx, p.ViewerUID)
		if err != nil {
			return nil, err
		}
	}

	if (axis == AxisFriends || axis == AxisNearby) && len(memberUIDs) == 0 {
		return []accountmodels.Entry{}, nil
	}

	conditions, args := entryConditions(axis, authorUID, memberUIDs, p.Language, 1)
	limit, offset := pageWindow(p.Page)
	args = append(args, limit, offset)

	query := `
		SELECT ` + entryColumns + `
		FROM diary_entries e
		JOIN users u ON u.uid = e.user_uid
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY e.created_at DESC, e.id ASC
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

// FeedResult is a syndication feed: the newest visible entries for the
// selected axis plus feed-level metadata.
type FeedResult struct {
	Title       string
	Description string
	Link        string
	Entries     []accountmodels.Entry
}

// Feed answers the syndication variant: no paging, newest 20, author or
// language axis or neither. Friends/nearby have no feed.
func (q *FeedQuery) Feed(ctx context.Context, displayName, language string) (*FeedResult, error) {
	result := &FeedResult{}

	axis := AxisGlobal
	var authorUID string
	switch {
	case displayName != "":
		axis = AxisAuthor
		author, err := q.users.GetActiveByDisplayName(ctx, displayName)
		if err != nil {
			return nil, err
		}
		authorUID = author.UID
		result.Title = fmt.Sprintf("%s's diary", displayName)
		result.Description = fmt.Sprintf("Recent diary entries from %s", displayName)
		result.Link = fmt.Sprintf("%s/user/%s/diary", serverBaseURL(), displayName)
	case language != "":
		axis = AxisLanguage
		name := q.languageName(ctx, language)
		result.Title = fmt.Sprintf("Diary entries in %s", name)
		result.Description = fmt.Sprintf("Recent diary entries from users writing in %s", name)
		result.Link = fmt.Sprintf("%s/diary/%s", serverBaseURL(), language)
	default:
		result.Title = "Community diary entries"
		result.Description = "Recent diary entries from community members"
		result.Link = serverBaseURL() + "/diary"
	}

	conditions, args := entryConditions(axis, authorUID, nil, language, 1)
	args = append(args, PageSize)

	query := `
		SELECT ` + entryColumns + `
		FROM diary_entries e
		JOIN users u ON u.uid = e.user_uid
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY e.created_at DESC, e.id ASC
		LIMIT $` + strconv.Itoa(len(args))

	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, err
	}
	result.Entries = entries
	return result, nil
}

// languageName resolves a language code to its English name, falling back
// to the code itself for unknown languages.
func (q *FeedQuery) languageName(ctx context.Context, code string) string {
	var name string
	err := q.db.QueryRow(ctx, `SELECT english_name FROM languages WHERE code = $1`, code).Scan(&name)
	if err != nil {
		return code
	}
	return name
}

func collectEntries(rows pgx.Rows) ([]accountmodels.Entry, error) {
	entries := []accountmodels.Entry{}
	for rows.Next() {
		var e accountmodels.Entry
		if err := rows.Scan(
			&e.ID,
			&e.AuthorUID,
			&e.AuthorName,
			&e.Title,
			&e.Body,
			&e.LanguageCode,
			&e.Latitude,
			&e.Longitude,
			&e.Visible,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func serverBaseURL() string {
	protocol := os.Getenv("SERVER_PROTOCOL")
	if protocol == "" {
		protocol = "https"
	}
	host := os.Getenv("SERVER_URL")
	if host == "" {
		host = "localhost:9091"
	}
	return protocol + "://" + host
}
