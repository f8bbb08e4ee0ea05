package models

// Order is the raw order document as pulled from the orders collection.
type Order struct {
	ID        DocID     `bson:"_id" json:"id"`
	UserID    DocID     `bson:"userId" json:"userId,omitempty"`
	EventID   DocID     `bson:"eventId" json:"eventId,omitempty"`
	Price     Price     `bson:"price" json:"price"`
	CreatedAt Timestamp `bson:"createdAt" json:"createdAt,omitempty"`
}
