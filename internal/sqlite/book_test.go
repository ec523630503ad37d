package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// setupBook attaches a backend and returns one book from it.
func setupBook(t *testing.T, name string) types.Book {
	t.Helper()
	b, _ := setupBackend(t)
	bk, err := b.GetBook(name)
	require.NoError(t, err)
	return bk
}

func TestAddReturnsPersistedContact(t *testing.T) {
	bk := setupBook(t, "Friends")

	c := types.Contact{FirstName: "John", LastName: "Doe", City: "Boston"}
	saved, err := bk.Add(c)
	require.NoError(t, err)
	assert.Equal(t, c, saved)
}

func TestAddRejectsDuplicateKey(t *testing.T) {
	bk := setupBook(t, "Friends")

	mustAdd(t, bk, types.Contact{FirstName: "John", LastName: "Doe", City: "Boston"})

	// Same identity key, different everything else: rejected, no mutation.
	_, err := bk.Add(types.Contact{FirstName: "John", LastName: "Doe", City: "Seattle", Email: "other@example.com"})
	assert.ErrorIs(t, err, types.ErrDuplicateEntry)

	contacts, err := bk.List()
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Boston", contacts[0].City)
}

func TestAddKeyIsCaseSensitive(t *testing.T) {
	bk := setupBook(t, "Friends")

	mustAdd(t, bk, types.Contact{FirstName: "John", LastName: "Doe"})
	mustAdd(t, bk, types.Contact{FirstName: "john", LastName: "doe"})

	contacts, err := bk.List()
	require.NoError(t, err)
	assert.Len(t, contacts, 2)
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	bk := setupBook(t, "Friends")

	for _, first := range []string{"Zoe", "Ada", "Mel"} {
		mustAdd(t, bk, types.Contact{FirstName: first, LastName: "X"})
	}

	contacts, err := bk.List()
	require.NoError(t, err)
	require.Len(t, contacts, 3)
	assert.Equal(t, "Zoe", contacts[0].FirstName)
	assert.Equal(t, "Ada", contacts[1].FirstName)
	assert.Equal(t, "Mel", contacts[2].FirstName)
}

func TestEditAppliesPartialUpdate(t *testing.T) {
	bk := setupBook(t, "Friends")

	mustAdd(t, bk, types.Contact{
		FirstName: "John", LastName: "Doe",
		City: "Boston", State: "MA", Email: "john@example.com",
	})

	updated, err := bk.Edit(
		types.Key{FirstName: "John", LastName: "Doe"},
		map[string]string{types.FieldCity: "Seattle", types.FieldState: "WA"})
	require.NoError(t, err)

	assert.Equal(t, "Seattle", updated.City)
	assert.Equal(t, "WA", updated.State)
	assert.Equal(t, "john@example.com", updated.Email, "untouched fields keep their values")

	contacts, err := bk.List()
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, updated, contacts[0])
}

func TestEditMissingKeyFails(t *testing.T) {
	bk := setupBook(t, "Friends")

	_, err := bk.Edit(types.Key{FirstName: "No", LastName: "Body"},
		map[string]string{types.FieldCity: "Boston"})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestEditRejectsUnknownField(t *testing.T) {
	bk := setupBook(t, "Friends")
	mustAdd(t, bk, types.Contact{FirstName: "John", LastName: "Doe"})

	_, err := bk.Edit(types.Key{FirstName: "John", LastName: "Doe"},
		map[string]string{"nickname": "JJ"})
	assert.ErrorIs(t, err, types.ErrUnknownField)
}

func TestEditRenameCollisionRejected(t *testing.T) {
	bk := setupBook(t, "Friends")

	mustAdd(t, bk, types.Contact{FirstName: "John", LastName: "Doe", City: "Boston"})
	mustAdd(t, bk, types.Contact{FirstName: "Jane", LastName: "Roe"})

	// Renaming Jane to John Doe would break key uniqueness.
	_, err := bk.Edit(types.Key{FirstName: "Jane", LastName: "Roe"},
		map[string]string{types.FieldFirstName: "John", types.FieldLastName: "Doe"})
	assert.ErrorIs(t, err, types.ErrDuplicateEntry)

	// Renaming to a free key is allowed.
	updated, err := bk.Edit(types.Key{FirstName: "Jane", LastName: "Roe"},
		map[string]string{types.FieldLastName: "Doe"})
	require.NoError(t, err)
	assert.Equal(t, types.Key{FirstName: "Jane", LastName: "Doe"}, updated.Key())
}

func TestDeleteRemovesContact(t *testing.T) {
	bk := setupBook(t, "Friends")

	mustAdd(t, bk, types.Contact{FirstName: "John", LastName: "Doe"})
	mustAdd(t, bk, types.Contact{FirstName: "Jane", LastName: "Roe"})

	require.NoError(t, bk.Delete(types.Key{FirstName: "John", LastName: "Doe"}))

	contacts, err := bk.List()
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Jane", contacts[0].FirstName)
}

func TestDeleteMissingKeyLeavesCountUnchanged(t *testing.T) {
	bk := setupBook(t, "Friends")
	mustAdd(t, bk, types.Contact{FirstName: "John", LastName: "Doe"})

	err := bk.Delete(types.Key{FirstName: "No", LastName: "Body"})
	assert.ErrorIs(t, err, types.ErrNotFound)

	contacts, err := bk.List()
	require.NoError(t, err)
	assert.Len(t, contacts, 1)
}

func TestSearchByCityCaseInsensitive(t *testing.T) {
	bk := setupBook(t, "Friends")

	mustAdd(t, bk, types.Contact{FirstName: "John", LastName: "Doe", City: "Boston", State: "MA"})
	mustAdd(t, bk, types.Contact{FirstName: "Jane", LastName: "Roe", City: "boston", State: "MA"})
	mustAdd(t, bk, types.Contact{FirstName: "Ada", LastName: "Lovelace", City: "Seattle", State: "WA"})
	// State field holding the city name must not match a city filter.
	mustAdd(t, bk, types.Contact{FirstName: "Mel", LastName: "Brooks", City: "Denver", State: "Boston"})

	matches, err := bk.Search("BOSTON", "")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "John", matches[0].FirstName)
	assert.Equal(t, "Jane", matches[1].FirstName)
}

func TestSearchCityOrState(t *testing.T) {
	bk := setupBook(t, "Friends")

	mustAdd(t, bk, types.Contact{FirstName: "John", LastName: "Doe", City: "Boston", State: "MA"})
	mustAdd(t, bk, types.Contact{FirstName: "Ada", LastName: "Lovelace", City: "Seattle", State: "WA"})
	mustAdd(t, bk, types.Contact{FirstName: "Mel", LastName: "Brooks", City: "Denver", State: "CO"})

	// Either filter matching is enough.
	matches, err := bk.Search("Seattle", "ma")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "John", matches[0].FirstName)
	assert.Equal(t, "Ada", matches[1].FirstName)
}

func TestSearchWithoutFiltersReturnsNothing(t *testing.T) {
	bk := setupBook(t, "Friends")
	mustAdd(t, bk, types.Contact{FirstName: "John", LastName: "Doe", City: "Boston"})

	matches, err := bk.Search("", "")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestCountByCity(t *testing.T) {
	bk := setupBook(t, "Friends")

	mustAdd(t, bk, types.Contact{FirstName: "A", LastName: "1", City: "NYC"})
	mustAdd(t, bk, types.Contact{FirstName: "B", LastName: "2", City: "NYC"})
	mustAdd(t, bk, types.Contact{FirstName: "C", LastName: "3", City: "LA"})

	counts, err := bk.CountByCity()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"NYC": 2, "LA": 1}, counts)
}

func TestCountByCityIsCaseLiteral(t *testing.T) {
	bk := setupBook(t, "Friends")

	mustAdd(t, bk, types.Contact{FirstName: "A", LastName: "1", City: "Boston"})
	mustAdd(t, bk, types.Contact{FirstName: "B", LastName: "2", City: "boston"})

	counts, err := bk.CountByCity()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Boston": 1, "boston": 1}, counts)
}

func TestSortByName(t *testing.T) {
	bk := setupBook(t, "Friends")

	mustAdd(t, bk, types.Contact{FirstName: "Zoe", LastName: "Adams"})
	mustAdd(t, bk, types.Contact{FirstName: "Ada", LastName: "Zimmer"})
	mustAdd(t, bk, types.Contact{FirstName: "Ada", LastName: "Adams"})

	require.NoError(t, bk.SortByName())

	contacts, err := bk.List()
	require.NoError(t, err)
	require.Len(t, contacts, 3)
	assert.Equal(t, "Adams", contacts[0].LastName)
	assert.Equal(t, "Zimmer", contacts[1].LastName)
	assert.Equal(t, "Zoe", contacts[2].FirstName)

	// Sorting an already-sorted book changes nothing.
	require.NoError(t, bk.SortByName())
	again, err := bk.List()
	require.NoError(t, err)
	assert.Equal(t, contacts, again)
}

func TestSortByCityIsStable(t *testing.T) {
	bk := setupBook(t, "Friends")

	mustAdd(t, bk, types.Contact{FirstName: "Zoe", LastName: "A", City: "Boston"})
	mustAdd(t, bk, types.Contact{FirstName: "Ada", LastName: "B", City: "Austin"})
	mustAdd(t, bk, types.Contact{FirstName: "Mel", LastName: "C", City: "Boston"})

	require.NoError(t, bk.SortByCity())

	contacts, err := bk.List()
	require.NoError(t, err)
	require.Len(t, contacts, 3)
	assert.Equal(t, "Austin", contacts[0].City)
	// Equal cities keep their relative input order.
	assert.Equal(t, "Zoe", contacts[1].FirstName)
	assert.Equal(t, "Mel", contacts[2].FirstName)
}

func TestSortPersistsAcrossSessions(t *testing.T) {
	dir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	b1 := NewBackend()
	require.NoError(t, b1.Attach(config))
	bk, err := b1.GetBook("Friends")
	require.NoError(t, err)
	mustAdd(t, bk, types.Contact{FirstName: "Zoe", LastName: "Adams"})
	mustAdd(t, bk, types.Contact{FirstName: "Ada", LastName: "Zimmer"})
	require.NoError(t, bk.SortByName())
	require.NoError(t, b1.Detach())

	b2 := NewBackend()
	require.NoError(t, b2.Attach(config))
	defer b2.Detach()

	bk2, err := b2.GetBook("Friends")
	require.NoError(t, err)
	contacts, err := bk2.List()
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Ada", contacts[0].FirstName)
	assert.Equal(t, "Zoe", contacts[1].FirstName)
}

func TestBooksAreIndependent(t *testing.T) {
	b, _ := setupBackend(t)

	friends, err := b.GetBook("Friends")
	require.NoError(t, err)
	work, err := b.GetBook("Work")
	require.NoError(t, err)

	mustAdd(t, friends, types.Contact{FirstName: "John", LastName: "Doe"})

	// The same key in another book is not a duplicate.
	mustAdd(t, work, types.Contact{FirstName: "John", LastName: "Doe"})

	contacts, err := work.List()
	require.NoError(t, err)
	assert.Len(t, contacts, 1)
}
