package opensearch

// IndexMapping returns the index settings and mappings for catalog records.
// Text fields use a standard analyzer; each also carries an .autocomplete
// sub-field indexed as lowercase edge n-grams of the whole value.
func IndexMapping() string {
	return `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0,
    "analysis": {
      "analyzer": {
        "default_analyzer": {
          "type": "custom",
          "tokenizer": "standard",
          "char_filter": ["html_strip"],
          "filter": ["lowercase", "stop", "snowball"]
        },
        "autocomplete_analyzer": {
          "type": "custom",
          "tokenizer": "keyword",
          "filter": ["lowercase", "edge_ngram_filter"]
        }
      },
      "filter": {
        "edge_ngram_filter": {
          "type": "edge_ngram",
          "min_gram": 1,
          "max_gram": 20
        },
        "stop": {
          "type": "stop",
          "stopwords": "_english_"
        },
        "snowball": {
          "type": "snowball",
          "language": "English"
        }
      }
    }
  },
  "mappings": {
    "properties": {
      "name":     { "type": "text", "analyzer": "default_analyzer", "fields": { "autocomplete": { "type": "text", "analyzer": "autocomplete_analyzer" }, "keyword": { "type": "keyword", "ignore_above": 256 } } },
      "brand":    { "type": "text", "analyzer": "default_analyzer", "fields": { "autocomplete": { "type": "text", "analyzer": "autocomplete_analyzer" }, "keyword": { "type": "keyword", "ignore_above": 256 } } },
      "category": { "type": "text", "analyzer": "default_analyzer", "fields": { "autocomplete": { "type": "text", "analyzer": "autocomplete_analyzer" }, "keyword": { "type": "keyword", "ignore_above": 256 } } },
      "price":    { "type": "double" },
      "url":      { "type": "keyword" },
      "store":    { "type": "keyword" }
    }
  }
}`
}
