package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/trampoline/internal/api/response"
	"github.com/mcoot/trampoline/internal/model"
	"github.com/mcoot/trampoline/internal/services/dictionary"
)

// DictionaryHandler exposes word lookups
type DictionaryHandler struct {
	dictionary dictionary.ServiceInterface
}

// NewDictionaryHandler creates a new dictionary handler
func NewDictionaryHandler(dict dictionary.ServiceInterface) *DictionaryHandler {
	return &DictionaryHandler{dictionary: dict}
}

// Status handles GET /api/v1/dictionary
func (h *DictionaryHandler) Status(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, dictionaryStatus(h.dictionary))
}

// Check handles GET /api/v1/dictionary/{word}
func (h *DictionaryHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.dictionary.Err(); err != nil {
		WriteError(w, err)
		return
	}
	if !h.dictionary.IsLoaded() {
		WriteError(w, model.ErrDictionaryNotLoaded)
		return
	}

	word := mux.Vars(r)["word"]
	response.JSON(w, http.StatusOK, response.WordCheck{
		Word:       word,
		Normalized: dictionary.Normalize(word),
		Valid:      h.dictionary.IsValidWord(word),
	})
}

func dictionaryStatus(dict dictionary.ServiceInterface) response.DictionaryStatus {
	status := response.DictionaryStatus{
		Loaded:    dict.IsLoaded(),
		WordCount: dict.WordCount(),
	}
	if err := dict.Err(); err != nil {
		status.Error = err.Error()
	}
	return status
}
