package font

import (
	"encoding/binary"
	"errors"
	"time"

	bolt "go.etcd.io/bbolt"
	"src.texel.sh/pkg/dimen"
	"src.texel.sh/pkg/glue"
	"src.texel.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[font] ")

// ErrNoTable is returned by (*Store).Get when there is no table with the
// given name.
var ErrNoTable = errors.New("no such metrics table")

const bucketTables = "tables"

// Keys inside the bucket of one table. Character keys are the UTF-8 encoding
// of the character prefixed with keyCharPrefix.
const (
	keySpace      = "space"
	keyCharPrefix = "c:"
)

// Store keeps named metrics tables in a bbolt database.
type Store struct {
	db *bolt.DB
}

// OpenStore opens or creates a metrics database.
func OpenStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketTables))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Println("opened metrics database", path)
	return &Store{db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores a table under the given name, replacing any table of the same
// name.
func (s *Store) Put(name string, t Table) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		tables := tx.Bucket([]byte(bucketTables))
		if tables.Bucket([]byte(name)) != nil {
			if err := tables.DeleteBucket([]byte(name)); err != nil {
				return err
			}
		}
		b, err := tables.CreateBucket([]byte(name))
		if err != nil {
			return err
		}
		if err := b.Put([]byte(keySpace), marshalGlue(t.Space)); err != nil {
			return err
		}
		for r, m := range t.Chars {
			key := append([]byte(keyCharPrefix), string(r)...)
			if err := b.Put(key, marshalMetrics(m)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get loads the table with the given name.
func (s *Store) Get(name string) (Table, error) {
	t := Table{Chars: map[rune]Metrics{}}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketTables)).Bucket([]byte(name))
		if b == nil {
			return ErrNoTable
		}
		return b.ForEach(func(k, v []byte) error {
			key := string(k)
			switch {
			case key == keySpace:
				g, err := unmarshalGlue(v)
				t.Space = g
				return err
			case len(key) > len(keyCharPrefix) && key[:len(keyCharPrefix)] == keyCharPrefix:
				m, err := unmarshalMetrics(v)
				t.Chars[[]rune(key[len(keyCharPrefix):])[0]] = m
				return err
			}
			return nil
		})
	})
	if err != nil {
		return Table{}, err
	}
	return t, nil
}

// Names returns the names of all stored tables, sorted.
func (s *Store) Names() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketTables)).ForEach(func(k, v []byte) error {
			// Nested buckets have nil values.
			if v == nil {
				names = append(names, string(k))
			}
			return nil
		})
	})
	return names, err
}

var errBadRecord = errors.New("malformed metrics record")

func putDimens(ds ...dimen.Dimen) []byte {
	buf := make([]byte, 4*len(ds))
	for i, d := range ds {
		binary.BigEndian.PutUint32(buf[4*i:], uint32(d))
	}
	return buf
}

func getDimens(buf []byte, n int) ([]dimen.Dimen, error) {
	if len(buf) != 4*n {
		return nil, errBadRecord
	}
	ds := make([]dimen.Dimen, n)
	for i := range ds {
		ds[i] = dimen.Dimen(int32(binary.BigEndian.Uint32(buf[4*i:])))
	}
	return ds, nil
}

func marshalMetrics(m Metrics) []byte {
	return putDimens(m.Width, m.Height, m.Depth)
}

func unmarshalMetrics(buf []byte) (Metrics, error) {
	ds, err := getDimens(buf, 3)
	if err != nil {
		return Metrics{}, err
	}
	return Metrics{ds[0], ds[1], ds[2]}, nil
}

// Glue is stored as space, stretch, stretch order, shrink, shrink order.
func marshalGlue(g glue.Glue) []byte {
	return putDimens(g.Space,
		g.Stretch.Value, dimen.Dimen(g.Stretch.Order),
		g.Shrink.Value, dimen.Dimen(g.Shrink.Order))
}

func unmarshalGlue(buf []byte) (glue.Glue, error) {
	ds, err := getDimens(buf, 5)
	if err != nil {
		return glue.Glue{}, err
	}
	return glue.Glue{
		Space:   ds[0],
		Stretch: dimen.Spring{Order: dimen.Order(ds[2]), Value: ds[1]},
		Shrink:  dimen.Spring{Order: dimen.Order(ds[4]), Value: ds[3]},
	}, nil
}
