package jsonapi

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Serialize", func() {
	var (
		serializer *Serializer
		article    Article
		created    time.Time
	)

	BeforeEach(func() {
		created, _ = time.Parse(time.RFC3339, "2014-11-10T16:30:48.823Z")
		article = Article{
			ID:        5,
			Title:     "First Post",
			Body:      "Lipsum",
			CreatedAt: created,
			AuthorID:  1,
		}
		serializer = mustSerializer(Article{},
			WithFields("id", "title", "body", "teaser", "createdAt"),
		)
	})

	Context("single entities", func() {
		It("renders the complete document", func() {
			payload, err := serializer.SerializeToJSON(Single(article))
			Expect(err).ToNot(HaveOccurred())
			Expect(payload).To(MatchJSON(`
			{
				"meta": {"serializerVersion": "1.0.0"},
				"jsonapi": {"version": "1.0"},
				"data": {
					"id": "5",
					"type": "articles",
					"attributes": {
						"title": "First Post",
						"body": "Lipsum",
						"teaser": null,
						"created-at": "2014-11-10T16:30:48.823Z"
					},
					"relationships": {
						"author": {
							"links": {
								"self": "/articles/5/relationships/author",
								"related": "/articles/5/author"
							}
						},
						"comments": {
							"links": {
								"self": "/articles/5/relationships/comments",
								"related": "/articles/5/comments"
							}
						}
					}
				}
			}
			`))
		})

		It("accepts a pointer to the entity", func() {
			document, err := serializer.Serialize(Single(&article))
			Expect(err).ToNot(HaveOccurred())
			Expect(document.Data.DataObject.ID).To(Equal("5"))
		})

		It("renders a nil entity as null data", func() {
			payload, err := serializer.SerializeToJSON(Single(nil))
			Expect(err).ToNot(HaveOccurred())
			Expect(payload).To(MatchJSON(`
			{
				"meta": {"serializerVersion": "1.0.0"},
				"jsonapi": {"version": "1.0"},
				"data": null
			}
			`))
		})

		It("renders a nil entity pointer as null data", func() {
			var missing *Article
			document, err := serializer.Serialize(Single(missing))
			Expect(err).ToNot(HaveOccurred())
			Expect(document.Data.DataObject).To(BeNil())
		})

		It("rejects entities of a different type", func() {
			_, err := serializer.Serialize(Single(Comment{ID: 1, Text: "nope"}))
			var invalid InvalidEntityError
			Expect(errors.As(err, &invalid)).To(BeTrue())
			Expect(invalid.Expected.Name()).To(Equal("Article"))
			Expect(invalid.Actual.Name()).To(Equal("Comment"))
		})

		It("is idempotent for an unmutated entity", func() {
			first, err := serializer.Serialize(Single(article))
			Expect(err).ToNot(HaveOccurred())
			second, err := serializer.Serialize(Single(article))
			Expect(err).ToNot(HaveOccurred())
			Expect(second).To(Equal(first))
		})
	})

	Context("collections", func() {
		It("preserves encounter order", func() {
			articles := []Article{
				{ID: 3, Title: "c", CreatedAt: created},
				{ID: 1, Title: "a", CreatedAt: created},
				{ID: 2, Title: "b", CreatedAt: created},
			}
			document, err := serializer.Serialize(Many(articles))
			Expect(err).ToNot(HaveOccurred())
			Expect(document.Data.DataArray).To(HaveLen(3))
			Expect(document.Data.DataArray[0].ID).To(Equal("3"))
			Expect(document.Data.DataArray[1].ID).To(Equal("1"))
			Expect(document.Data.DataArray[2].ID).To(Equal("2"))
		})

		It("renders an empty collection as an empty array", func() {
			payload, err := serializer.SerializeToJSON(Many([]Article{}))
			Expect(err).ToNot(HaveOccurred())
			Expect(payload).To(MatchJSON(`
			{
				"meta": {"serializerVersion": "1.0.0"},
				"jsonapi": {"version": "1.0"},
				"data": []
			}
			`))
		})

		It("renders nil members as null entries", func() {
			document, err := serializer.Serialize(Many([]*Article{&article, nil}))
			Expect(err).ToNot(HaveOccurred())
			Expect(document.Data.DataArray).To(HaveLen(2))
			Expect(document.Data.DataArray[0]).ToNot(BeNil())
			Expect(document.Data.DataArray[1]).To(BeNil())
		})

		It("rejects non-slice collections", func() {
			_, err := serializer.Serialize(Many(article))
			Expect(err).To(MatchError(ErrInvalidCollection))
		})

		It("rejects a nil collection", func() {
			_, err := serializer.Serialize(Many(nil))
			Expect(err).To(MatchError(ErrInvalidCollection))
		})

		It("reports the failing element", func() {
			mixed := []interface{}{article, Comment{ID: 9}}
			_, err := serializer.Serialize(Many(mixed))
			Expect(err).To(HaveOccurred())
			var invalid InvalidEntityError
			Expect(errors.As(err, &invalid)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("collection element 1"))
		})
	})

	Context("document meta", func() {
		It("honors a version override", func() {
			versioned := mustSerializer(Article{},
				WithFields("id", "title"),
				WithVersion("2.3.4"),
			)
			document, err := versioned.Serialize(Single(nil))
			Expect(err).ToNot(HaveOccurred())
			Expect(document.Meta["serializerVersion"]).To(Equal("2.3.4"))
		})

		It("merges additional meta entries", func() {
			annotated := mustSerializer(Article{},
				WithFields("id", "title"),
				WithMeta(map[string]interface{}{"copyright": "ACME"}),
			)
			document, err := annotated.Serialize(Single(nil))
			Expect(err).ToNot(HaveOccurred())
			Expect(document.Meta["copyright"]).To(Equal("ACME"))
			Expect(document.Meta["serializerVersion"]).To(Equal("1.0.0"))
		})

		It("never lets meta entries shadow the serializer version", func() {
			shadowed := mustSerializer(Article{},
				WithFields("id", "title"),
				WithMeta(map[string]interface{}{"serializerVersion": "bogus"}),
			)
			document, err := shadowed.Serialize(Single(nil))
			Expect(err).ToNot(HaveOccurred())
			Expect(document.Meta["serializerVersion"]).To(Equal("1.0.0"))
		})
	})
})
