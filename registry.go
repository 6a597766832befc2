package mapology

import (
	"reflect"

	"github.com/viant/mapology/conv"
	"github.com/viant/mapology/visitor"
)

// TypeCodec converts custom scalar types (enums, identifiers) between raw and typed values, either function may be nil
type TypeCodec struct {
	Decode func(raw interface{}) (interface{}, error)
	Encode func(value interface{}) (interface{}, error)
}

var codecs = visitor.NewSyncMap[reflect.Type, *TypeCodec]()

// RegisterType registers process wide codec for supplied type
func RegisterType(t reflect.Type, codec TypeCodec) {
	codecs.Put(t, &codec)
}

func lookupCodec(t reflect.Type) *TypeCodec {
	if codecs.Len() == 0 {
		return nil
	}
	codec, _ := codecs.Get(t)
	return codec
}

// registerCodecs backs converter custom conversions with registered decoders
func registerCodecs(converter *conv.Converter) {
	codecs.Range(func(t reflect.Type, codec *TypeCodec) bool {
		if decode := codec.Decode; decode != nil {
			converter.RegisterConversion(t, func(src interface{}, _ conv.Options) (interface{}, error) {
				return decode(src)
			})
		}
		return true
	})
}
