// Package mapology maps decoded JSON dictionaries to Go structs and back.
//
// Fields are discovered once per type and written directly at their memory offset.
// Dictionary keys come from the json tag or the field name. A model can register
// per call rules by implementing Mappable:
//
//	type User struct {
//		ID   int
//		Name string
//	}
//
//	func (u *User) Mapping(mapper *mapology.Mapper) {
//		mapper.Alias(&u.ID, "user_id", "id")
//	}
//
//	user, err := mapology.Deserialize[User](map[string]interface{}{"user_id": 1.0, "Name": "Alice"})
//
// Per field problems (missing keys, failed conversions, vetoed transforms) never fail a call,
// they are logged with log/slog and the field keeps its default value.
package mapology
