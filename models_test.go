package mapology

import (
	"fmt"
	"net"
	"reflect"
	"strings"
	"time"
)

type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Address struct {
	City string `json:"city"`
	Zip  string `json:"zip"`
}

// Person registers alias for its name and counts mapping hook calls
type Person struct {
	Name    string  `json:"name"`
	Address Address `json:"address"`
	calls   int
}

func (p *Person) Mapping(mapper *Mapper) {
	p.calls++
	mapper.Alias(&p.Name, "full_name", "name")
}

type Account struct {
	ID      int                `json:"id"`
	Owner   *Person            `json:"owner"`
	Tags    []string           `json:"tags"`
	Scores  map[string]float64 `json:"scores"`
	Created time.Time          `json:"created"`
	calls   int
}

func (a *Account) Mapping(mapper *Mapper) {
	a.calls++
	mapper.Alias(&a.ID, "account_id")
}

type Sample struct {
	Int     int               `json:"int"`
	Int8    int8              `json:"int8"`
	Uint    uint16            `json:"uint"`
	Float   float64           `json:"float"`
	Float32 float32           `json:"float32"`
	Bool    bool              `json:"bool"`
	Text    string            `json:"text"`
	Ptr     *string           `json:"ptr"`
	Items   []int             `json:"items"`
	Pair    [2]string         `json:"pair"`
	Counts  map[string]int    `json:"counts"`
	ByID    map[int]string    `json:"byId"`
	Nested  Address           `json:"nested"`
	Refs    []*Address        `json:"refs"`
	When    time.Time         `json:"when"`
	Any     interface{}       `json:"any"`
	Attrs   map[string]string `json:"attrs"`
	Level   Level             `json:"level"`
	Payload []byte            `json:"payload"`
}

// Level is a named scalar
type Level int

type Base struct {
	ID      int    `json:"id"`
	Created string `json:"created"`
}

type Derived struct {
	Name string `json:"name"`
	Base
	ID string `json:"id"`
}

type Embedding struct {
	*Base
	Name string `json:"name"`
}

type Deep struct {
	Embedding
	Extra string `json:"extra"`
}

type Ruled struct {
	ID     int    `json:"id" mapper:"alias={user_id,uid}"`
	Secret string `json:"secret" mapper:"exclude"`
	Name   string `json:"name"`
}

type Secured struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Token    string `json:"token"`
}

func (s *Secured) Mapping(mapper *Mapper) {
	mapper.Exclude(&s.Password)
	mapper.TransformWrite(&s.Token, func(value interface{}) (interface{}, bool) {
		if value.(string) == "" {
			return nil, false
		}
		return "***", true
	})
	mapper.TransformRead("login", func(raw interface{}) (interface{}, bool) {
		text, ok := raw.(string)
		if !ok || text == "" {
			return nil, false
		}
		return strings.ToLower(text), true
	})
}

type Prioritized struct {
	F string `json:"F"`
}

func (p *Prioritized) Mapping(mapper *Mapper) {
	mapper.Alias(&p.F, "b", "a")
}

type Profile struct {
	Name string `json:"name"`
}

type Transient struct {
	Name     string `json:"name"`
	Internal string `json:"-"`
	Hidden   string `json:"hidden" format:"ignore"`
	hidden   string
}

type Private struct {
	Name   string `json:"name"`
	secret string
}

type Formatted struct {
	UserName string
	ID       int
	Tagged   string `json:"TAG"`
}

type Defaults struct {
	Limit int    `json:"limit"`
	Name  string `json:"name"`
}

func (d *Defaults) Init() {
	d.Limit = 10
}

// Color is an enum with its own raw representation
type Color int

const (
	Red Color = iota + 1
	Green
)

func (c *Color) UnmarshalRaw(raw interface{}) error {
	switch raw {
	case "red":
		*c = Red
	case "green":
		*c = Green
	default:
		return fmt.Errorf("unknown color: %v", raw)
	}
	return nil
}

func (c Color) MarshalRaw() (interface{}, error) {
	switch c {
	case Red:
		return "red", nil
	case Green:
		return "green", nil
	}
	return nil, fmt.Errorf("unknown color: %d", c)
}

// Cents is registered with a type codec
type Cents int64

func init() {
	RegisterType(reflect.TypeOf(Cents(0)), TypeCodec{
		Decode: func(raw interface{}) (interface{}, error) {
			f, ok := raw.(float64)
			if !ok {
				return nil, fmt.Errorf("expected number, got %T", raw)
			}
			return Cents(f*100 + 0.5), nil
		},
		Encode: func(value interface{}) (interface{}, error) {
			return float64(value.(Cents)) / 100, nil
		},
	})
}

type Custom struct {
	Color Color     `json:"color"`
	Tint  *Color    `json:"tint"`
	Price Cents     `json:"price"`
	IP    net.IP    `json:"ip"`
	Day   time.Time `json:"day" format:"timeLayout=2006-01-02"`
}

// Dynamic writes listed keys through key value methods
type Dynamic struct {
	Name  string `json:"name"`
	Size  int    `json:"size"`
	extra map[string]interface{}
}

func (d *Dynamic) KeyValueFields() []string {
	return []string{"Name", "color"}
}

func (d *Dynamic) SetValueForKey(key string, value interface{}) error {
	switch key {
	case "Name":
		d.Name = strings.ToUpper(value.(string))
		return nil
	case "color":
		if d.extra == nil {
			d.extra = map[string]interface{}{}
		}
		d.extra[key] = value
		return nil
	}
	return fmt.Errorf("unknown key: %v", key)
}

func (d *Dynamic) ValueForKey(key string) (interface{}, bool) {
	switch key {
	case "Name":
		return strings.ToLower(d.Name), true
	default:
		value, ok := d.extra[key]
		return value, ok
	}
}

type TrackedHas struct {
	ID   bool
	Name bool
}

type Tracked struct {
	ID   int         `json:"id"`
	Name string      `json:"name"`
	Has  *TrackedHas `setMarker:"true"`
}

type Node struct {
	Value    int     `json:"value"`
	Children []*Node `json:"children"`
}

type Unsupported struct {
	Name    string     `json:"name"`
	Channel chan int   `json:"channel"`
	Fn      func()     `json:"fn"`
	Complex complex128 `json:"complex"`
}

// Bridged lists its json key for key value access
type Bridged struct {
	UserName string `json:"user_name"`
	store    map[string]interface{}
}

func (b *Bridged) KeyValueFields() []string {
	return []string{"user_name"}
}

func (b *Bridged) SetValueForKey(key string, value interface{}) error {
	if b.store == nil {
		b.store = map[string]interface{}{}
	}
	b.store[key] = value
	return nil
}

func (b *Bridged) ValueForKey(key string) (interface{}, bool) {
	value, ok := b.store[key]
	return value, ok
}

type LayerCore struct {
	X string
}

type LayerA struct {
	LayerCore
}

type LayerB struct {
	X string
}

// Layered promotes X from LayerB at depth one and from LayerCore at depth two
type Layered struct {
	LayerA
	LayerB
}

// Twin promotes X from two embedded structs at the same depth
type Twin struct {
	LayerB
	LayerCore
}
