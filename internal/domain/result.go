package domain

// Resultados de escrita no formato que o cliente web já consome
// (acknowledged/insertedId/matchedCount...).

// InsertResult descreve uma inserção.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// UpdateResult descreve uma atualização.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult descreve uma remoção.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
