package settingsstore

import (
	"context"
	"strconv"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/outfit-advisor/internal/domain/settings"
)

const (
	fieldDarkMode          = "darkMode"
	fieldDailyNotification = "dailyNotification"
	fieldHomeCity          = "homeCity"
)

// ValkeyStore keeps user settings in a Valkey hash, one field per setting.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

var _ settings.Store = (*ValkeyStore)(nil)

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "outfit-advisor"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context) (settings.Settings, bool, error) {
	fields, err := s.client.Do(ctx, s.client.B().Hgetall().Key(s.key()).Build()).AsStrMap()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return settings.Settings{}, false, nil
		}
		return settings.Settings{}, false, err
	}
	if len(fields) == 0 {
		return settings.Settings{}, false, nil
	}
	out := settings.Settings{
		DarkMode:          parseFlag(fields[fieldDarkMode]),
		DailyNotification: parseFlag(fields[fieldDailyNotification]),
		HomeCity:          fields[fieldHomeCity],
	}
	return out, true, nil
}

func (s *ValkeyStore) Put(ctx context.Context, value settings.Settings) error {
	cmd := s.client.B().Hset().Key(s.key()).FieldValue().
		FieldValue(fieldDarkMode, strconv.FormatBool(value.DarkMode)).
		FieldValue(fieldDailyNotification, strconv.FormatBool(value.DailyNotification)).
		FieldValue(fieldHomeCity, value.HomeCity).
		Build()
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) key() string {
	return s.prefix + ":settings"
}

func parseFlag(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
