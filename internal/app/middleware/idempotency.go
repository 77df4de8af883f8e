package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"time"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/commands"
)

// IdempotentCommand marks a command whose result may be replayed when the
// same key is dispatched again. An empty key opts out per dispatch.
type IdempotentCommand interface {
	commands.Command
	IdempotencyKey() string
	// ResultPrototype returns a pointer to a zero value of the handler's
	// result type, used to decode a stored replay.
	ResultPrototype() any
}

// IdempotencyRecord is the stored outcome of a keyed command, success or
// failure alike. Failures replay as errors so a retry cannot flip an
// already-rejected booking into a booked one.
type IdempotencyRecord struct {
	Key        string
	Payload    []byte
	Error      string
	OccurredAt time.Time
}

type IdempotencyStore interface {
	Get(ctx context.Context, key string) (IdempotencyRecord, bool, error)
	Save(ctx context.Context, rec IdempotencyRecord) error
}

type ResultCodec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, out any) error
}

type JSONResultCodec struct{}

func (JSONResultCodec) Encode(v any) ([]byte, error) { return json.Marshal(v) }

func (JSONResultCodec) Decode(data []byte, out any) error { return json.Unmarshal(data, out) }

var errMissingPrototype = errors.New("middleware: idempotent command requires result prototype")

// Idempotency replays the stored outcome for a command key that has been
// seen before. Clients set the key from their Idempotency-Key header so a
// retried submission lands exactly once.
func Idempotency(store IdempotencyStore, codec ResultCodec) CommandMiddleware {
	if store == nil {
		panic("middleware: idempotency store required")
	}
	if codec == nil {
		codec = JSONResultCodec{}
	}
	return func(next commands.Bus) commands.Bus {
		return dispatchFn(func(ctx context.Context, cmd commands.Command) (any, error) {
			keyed, ok := cmd.(IdempotentCommand)
			if !ok || keyed.IdempotencyKey() == "" {
				return next.Dispatch(ctx, cmd)
			}
			key := keyed.IdempotencyKey()

			if rec, found, err := store.Get(ctx, key); err != nil {
				return nil, err
			} else if found {
				return replay(rec, keyed, codec)
			}

			result, err := next.Dispatch(ctx, cmd)
			rec := IdempotencyRecord{Key: key, OccurredAt: time.Now().UTC()}
			if err != nil {
				rec.Error = err.Error()
			} else if result != nil {
				payload, encErr := codec.Encode(result)
				if encErr != nil {
					return nil, encErr
				}
				rec.Payload = payload
			}
			if saveErr := store.Save(ctx, rec); saveErr != nil {
				if err != nil {
					return nil, errors.Join(err, saveErr)
				}
				return nil, saveErr
			}
			return result, err
		})
	}
}

func replay(rec IdempotencyRecord, cmd IdempotentCommand, codec ResultCodec) (any, error) {
	if rec.Error != "" {
		return nil, errors.New(rec.Error)
	}
	proto := cmd.ResultPrototype()
	if proto == nil {
		return nil, errMissingPrototype
	}
	if err := codec.Decode(rec.Payload, proto); err != nil {
		return nil, err
	}
	if rv := reflect.ValueOf(proto); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nil, errMissingPrototype
	}
	return proto, nil
}
