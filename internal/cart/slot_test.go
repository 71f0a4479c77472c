package cart

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileSlot_MissingFileReadsNil(t *testing.T) {
	slot := NewFileSlot(filepath.Join(t.TempDir(), "cart.json"))
	data, err := slot.Read(context.Background())
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestFileSlot_WriteCreatesDirsAndReplaces(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "cart.json")
	slot := NewFileSlot(path)

	require.NoError(t, slot.Write(ctx, []byte(`[1]`)))
	require.NoError(t, slot.Write(ctx, []byte(`[2]`)))

	data, err := slot.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, `[2]`, string(data))

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".cart.json.*"))
	require.NoError(t, err)
	require.Empty(t, leftovers, "temp files should be cleaned up")
}

func TestFileSlot_StoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cart.json")

	s := NewStore(NewFileSlot(path), nil)
	require.NoError(t, s.Load(ctx))
	_, err := s.Add(ctx, product("a", "Chair", "19.99"))
	require.NoError(t, err)

	again := NewStore(NewFileSlot(path), nil)
	require.NoError(t, again.Load(ctx))
	require.Equal(t, []string{"a"}, ids(again.Entries()))

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	corrupt := NewStore(NewFileSlot(path), nil)
	require.NoError(t, corrupt.Load(ctx))
	require.Zero(t, corrupt.Len())
}

func TestSQLiteSlot_ReadWriteAndNamedSlots(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cart.db")

	primary, err := OpenSQLiteSlot(ctx, path, "cart")
	require.NoError(t, err)
	t.Cleanup(func() { _ = primary.Close() })

	data, err := primary.Read(ctx)
	require.NoError(t, err)
	require.Nil(t, data)

	require.NoError(t, primary.Write(ctx, []byte(`["first"]`)))
	require.NoError(t, primary.Write(ctx, []byte(`["second"]`)))
	data, err = primary.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, `["second"]`, string(data))

	other, err := OpenSQLiteSlot(ctx, path, "wishlist")
	require.NoError(t, err)
	t.Cleanup(func() { _ = other.Close() })
	data, err = other.Read(ctx)
	require.NoError(t, err)
	require.Nil(t, data, "slots are independent")
}

func TestSQLiteSlot_StoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cart.db")

	slot, err := OpenSQLiteSlot(ctx, path, "cart")
	require.NoError(t, err)
	s := NewStore(slot, nil)
	require.NoError(t, s.Load(ctx))
	_, err = s.Add(ctx, product("a", "Chair", "19.99"))
	require.NoError(t, err)
	_, err = s.Add(ctx, product("b", "Lamp", "5.00"))
	require.NoError(t, err)
	require.NoError(t, slot.Close())

	reopened, err := OpenSQLiteSlot(ctx, path, "cart")
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	again := NewStore(reopened, nil)
	require.NoError(t, again.Load(ctx))
	require.Equal(t, []string{"a", "b"}, ids(again.Entries()))
	require.Equal(t, "24.99", again.Total().StringFixed(2))
}

func TestOpenSQLiteSlot_RequiresName(t *testing.T) {
	_, err := OpenSQLiteSlot(context.Background(), filepath.Join(t.TempDir(), "cart.db"), "  ")
	require.Error(t, err)
}

func ids(entries []Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}
