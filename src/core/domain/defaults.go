package domain

// DefaultShedCapacity is the slot capacity applied to every domain when
// no override is configured. Original fair layout allotted sheds 1-100
// per category.
const DefaultShedCapacity = 100

// MinPreorderQuantity is the smallest quantity a preorder may reserve.
const MinPreorderQuantity = 1
