package models

// Word is one entry of a dictionary file.
type Word struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
	Phonetic    string `json:"phonetic,omitempty"`
	Example     string `json:"example,omitempty"`
	AudioURL    string `json:"audio_url,omitempty"`
}

// Dictionary is the metadata header of a dictionary JSON file.
type Dictionary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language"`
	Category    string `json:"category,omitempty"`
	WordCount   int    `json:"word_count"`
}

// DictionaryFile is the on-disk format: metadata plus the full word list.
type DictionaryFile struct {
	Dictionary
	Words []Word `json:"words"`
}

// WordPage is one paginated slice of a dictionary's words.
type WordPage struct {
	DictionaryID string `json:"dictionary_id"`
	Page         int    `json:"page"`
	PageSize     int    `json:"page_size"`
	TotalWords   int    `json:"total_words"`
	TotalPages   int    `json:"total_pages"`
	Words        []Word `json:"words"`
}
