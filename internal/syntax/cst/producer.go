package cst

// Producer turns source text into a flat [Document].
//
// Producers are typically a Liquid HTML tokenizer, on malformed input they
// should return an error wrapping [syntax.ErrParse].
type Producer interface {
	Produce(src string) (Document, error)
}

// ProducerFunc is an adapter allowing an ordinary function to be used as a [Producer].
type ProducerFunc func(src string) (Document, error)

// Produce implements [Producer] by calling f.
func (f ProducerFunc) Produce(src string) (Document, error) {
	return f(src)
}
