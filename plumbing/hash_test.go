package plumbing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObjectIdRoundTrip(t *testing.T) {
	const s = "aabbccddeeff00112233445566778899aabbccdd"
	oid, err := ParseObjectId(s)
	require.NoError(t, err)
	assert.Equal(t, s, oid.String())
}

func TestParseObjectIdRejectsBadInput(t *testing.T) {
	_, err := ParseObjectId("short")
	require.Error(t, err)
	assert.True(t, IsMalformedObject(err))

	_, err = ParseObjectId("zz00000000000000000000000000000000000000")
	require.Error(t, err)
	assert.True(t, IsMalformedObject(err))
}

func TestObjectIdOrdering(t *testing.T) {
	a := NewObjectId("1111111111111111111111111111111111111111")
	b := NewObjectId("2222222222222222222222222222222222222222")
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.Equal(t, -1, a.Compare(b))

	ids := []ObjectId{b, a}
	SortObjectIds(ids)
	assert.Equal(t, a, ids[0])
	assert.Equal(t, b, ids[1])
}

func TestHasherMatchesGitBlobHash(t *testing.T) {
	// echo -n "" | git hash-object --stdin  =>  e69de29bb2d1d6434b8b29ae775ad8c2e48c5391
	h := NewHasher()
	_, _ = h.Write([]byte("blob 0\x00"))
	assert.Equal(t, "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391", h.Sum().String())
}
