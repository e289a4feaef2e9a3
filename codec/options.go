package codec

import "github.com/arloliu/lln/internal/options"

// DecoderOption configures a Decoder.
type DecoderOption = options.Option[*Decoder]

// WithPrimitiveLiterals makes the decoder recognize bare "None", "True", "False" and
// numeric literals as Null, Bool and Number fields.
//
// Off by default: stored lines have always read primitives back as Text, and consumers
// rely on that. Enable it only for lines known to be written by this package.
func WithPrimitiveLiterals(enabled bool) DecoderOption {
	return options.NoError(func(d *Decoder) {
		d.primitiveLiterals = enabled
	})
}
