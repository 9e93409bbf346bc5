package redis

import (
	"context"
	"hash/crc32"
	"hash/fnv"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/Guyuepp/forum-comments/domain"
)

const (
	KeyTopicBloom = "bloom:topic:ids"

	defaultBloomHashes = 3
)

// topicBloom is a bitmap bloom filter over topic ids kept in a single redis key.
type topicBloom struct {
	client  *redis.Client
	bitSize uint64
	hashes  int
}

var _ domain.BloomRepository = (*topicBloom)(nil)

func NewRedisBloomRepo(client *redis.Client, bitSize uint64) *topicBloom {
	if bitSize == 0 {
		bitSize = 1
	}
	return &topicBloom{
		client:  client,
		bitSize: bitSize,
		hashes:  defaultBloomHashes,
	}
}

func (r *topicBloom) Add(ctx context.Context, id int64) error {
	return r.BulkAdd(ctx, []int64{id})
}

func (r *topicBloom) BulkAdd(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	pipe := r.client.Pipeline()
	for _, id := range ids {
		for _, offset := range r.offsets(id) {
			pipe.SetBit(ctx, KeyTopicBloom, int64(offset), 1)
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *topicBloom) Exists(ctx context.Context, id int64) (bool, error) {
	pipe := r.client.Pipeline()
	for _, offset := range r.offsets(id) {
		pipe.GetBit(ctx, KeyTopicBloom, int64(offset))
	}
	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return false, err
	}

	for _, cmd := range cmds {
		val, err := cmd.(*redis.IntCmd).Result()
		if err != nil {
			return false, err
		}
		if val == 0 {
			return false, nil
		}
	}
	return true, nil
}

// offsets derives the k bit positions from two base hashes: h1 + i*h2.
func (r *topicBloom) offsets(id int64) []uint64 {
	data := strconv.AppendInt(nil, id, 10)

	h1 := uint64(crc32.ChecksumIEEE(data))
	f := fnv.New64a()
	_, _ = f.Write(data)
	h2 := f.Sum64() | 1

	res := make([]uint64, r.hashes)
	for i := range res {
		res[i] = (h1 + uint64(i)*h2) % r.bitSize
	}
	return res
}
