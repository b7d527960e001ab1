package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"

	sent "github.com/revelaction/relex/sentence"
	"github.com/revelaction/relex/svo"
)

func TestKey(t *testing.T) {
	s := sent.Sentence{Tokens: []sent.Token{{Text: "he", Lemma: "he", Dep: "nsubj", Head: 1}, {Index: 1, Text: "ran", Lemma: "run", Dep: "ROOT", Head: 1}}}

	plain := Key(s, svo.Config{})
	adj := Key(s, svo.Config{AdjectiveAsObject: true})

	require.Regexp(t, `^relex:[0-9a-f]+:false$`, plain)
	require.Regexp(t, `^relex:[0-9a-f]+:true$`, adj)
	require.Equal(t, plain, Key(s, svo.Config{}))

	// the sentence position does not change the key
	s.Id, s.DocId = 4, 2
	require.Equal(t, plain, Key(s, svo.Config{}))

	other := sent.Sentence{Tokens: []sent.Token{{Text: "she", Lemma: "she", Dep: "nsubj", Head: 1}, {Index: 1, Text: "ran", Lemma: "run", Dep: "ROOT", Head: 1}}}
	require.NotEqual(t, plain, Key(other, svo.Config{}))
}

func TestGetUnreachable(t *testing.T) {
	// nothing listens on the port: errors are returned, not hidden as misses
	c := NewFromClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond}), time.Minute)
	defer c.Close()

	_, ok, err := c.Get(context.Background(), "relex:0:false")
	require.Error(t, err)
	require.False(t, ok)
	require.False(t, errors.Is(err, redis.Nil))

	_, err = c.GetOrCompute(context.Background(), "relex:0:false", func() svo.Result {
		t.Fatal("compute must not run when the cache fails")
		return svo.Result{}
	})
	require.Error(t, err)
}
