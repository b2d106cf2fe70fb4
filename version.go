package jsonapi

// Version identifies the document-producing logic and is advertised as
// meta.serializerVersion in every rendered document. It is a variable so
// build pipelines can inject a release version via -ldflags; individual
// serializers can override it with WithVersion.
var Version = "1.0.0"

// jsonAPIVersion is the JSON API specification level of the documents this
// package produces.
const jsonAPIVersion = "1.0"
