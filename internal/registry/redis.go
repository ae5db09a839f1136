package registry

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"

	"github.com/betguide449-cyber/betguide-cli/internal/model"
)

// RedisRegistry implements Registry on a redis hash per code. Each field of
// the hash is merged independently, which gives the per-field last-write-wins
// model the engine expects. An index set tracks known code keys.
type RedisRegistry struct {
	client    *redis.Client
	namespace string
}

// NewRedis connects to redis and verifies the connection.
func NewRedis(addr, password string, db int, namespace string) (*RedisRegistry, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, eris.Wrap(err, "registry: connect redis")
	}

	return &RedisRegistry{client: client, namespace: namespace}, nil
}

func (r *RedisRegistry) Close() error {
	return r.client.Close()
}

func (r *RedisRegistry) codeKey(code string) string {
	return r.namespace + ":code:" + code
}

func (r *RedisRegistry) indexKey() string {
	return r.namespace + ":codes"
}

func (r *RedisRegistry) Get(ctx context.Context, code string) (*model.VipCode, error) {
	fields, err := r.client.HGetAll(ctx, r.codeKey(code)).Result()
	if err != nil {
		return nil, eris.Wrapf(err, "registry: get %s", code)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}
	c := parseFields(code, fields)
	return &c, nil
}

func (r *RedisRegistry) Create(ctx context.Context, c model.VipCode) error {
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, r.codeKey(c.Code), encodeFields(c))
	pipe.SAdd(ctx, r.indexKey(), c.Code)
	if _, err := pipe.Exec(ctx); err != nil {
		return eris.Wrapf(err, "registry: create %s", c.Code)
	}
	return nil
}

func (r *RedisRegistry) Update(ctx context.Context, code string, fields Fields) error {
	norm := make(map[string]string, len(fields))
	for k, v := range fields {
		norm[k] = encodeValue(v)
	}
	if err := r.client.HSet(ctx, r.codeKey(code), norm).Err(); err != nil {
		return eris.Wrapf(err, "registry: update %s", code)
	}
	return nil
}

func (r *RedisRegistry) Bind(ctx context.Context, code, deviceID string) error {
	key := r.codeKey(code)

	// HSETNX makes the first bind atomic; losing the race is only acceptable
	// when the holder is this same device.
	set, err := r.client.HSetNX(ctx, key, "assignedTo", deviceID).Result()
	if err != nil {
		return eris.Wrapf(err, "registry: bind %s", code)
	}
	if set {
		return nil
	}

	current, err := r.client.HGet(ctx, key, "assignedTo").Result()
	if err != nil && !eris.Is(err, redis.Nil) {
		return eris.Wrapf(err, "registry: bind %s", code)
	}
	if current != deviceID {
		return ErrAlreadyBound
	}
	return nil
}

func (r *RedisRegistry) Delete(ctx context.Context, code string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.codeKey(code))
	pipe.SRem(ctx, r.indexKey(), code)
	if _, err := pipe.Exec(ctx); err != nil {
		return eris.Wrapf(err, "registry: delete %s", code)
	}
	return nil
}

func (r *RedisRegistry) List(ctx context.Context) ([]model.VipCode, error) {
	keys, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, eris.Wrap(err, "registry: list codes")
	}

	codes := make([]model.VipCode, 0, len(keys))
	for _, code := range keys {
		c, err := r.Get(ctx, code)
		if eris.Is(err, ErrNotFound) {
			// Entry deleted between SMembers and HGetAll; drop the stale
			// index member.
			r.client.SRem(ctx, r.indexKey(), code)
			continue
		}
		if err != nil {
			return nil, err
		}
		codes = append(codes, *c)
	}
	return codes, nil
}

// encodeFields flattens a code into hash fields. An unbound code omits the
// assignedTo field entirely so that Bind's HSETNX can claim it.
func encodeFields(c model.VipCode) map[string]string {
	fields := map[string]string{
		"predictions":     strconv.Itoa(c.Predictions),
		"usedPredictions": strconv.Itoa(c.UsedPredictions),
		"active":          strconv.FormatBool(c.Active),
		"createdAt":       strconv.FormatInt(c.CreatedAt, 10),
	}
	if c.AssignedTo != "" {
		fields["assignedTo"] = c.AssignedTo
	}
	return fields
}

func encodeValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return ""
	}
}

// parseFields tolerates missing or malformed fields by zeroing them; a code
// written by an older client must still load.
func parseFields(code string, fields map[string]string) model.VipCode {
	atoi := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}
	active, _ := strconv.ParseBool(fields["active"])
	createdAt, _ := strconv.ParseInt(fields["createdAt"], 10, 64)
	return model.VipCode{
		Code:            code,
		Predictions:     atoi(fields["predictions"]),
		UsedPredictions: atoi(fields["usedPredictions"]),
		Active:          active,
		AssignedTo:      fields["assignedTo"],
		CreatedAt:       createdAt,
	}
}
