package model

// CallQueue is a RingCentral call queue. The platform never embeds the member
// list in the queue representation itself; MemberIDs is populated from the
// members sub-resource and is not part of the queue payload.
type CallQueue struct {
	URI             string `json:"uri,omitempty"`
	ID              string `json:"id,omitempty"`
	ExtensionNumber string `json:"extensionNumber,omitempty"`
	Name            string `json:"name,omitempty"`

	MemberIDs []string `json:"-"`
}

// BulkAssign is the payload of the call-queue bulk-assign endpoint, the
// platform's single operation for adding and removing members in one request.
type BulkAssign struct {
	AddedExtensionIDs   []string `json:"addedExtensionIds"`
	RemovedExtensionIDs []string `json:"removedExtensionIds"`
}
