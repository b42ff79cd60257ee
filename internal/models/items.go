package models

// ItemList хранит редактируемый список строк счета с правилами формы:
// список никогда не бывает пустым, удаление единственной строки — no-op,
// добавление вставляет пустую строку в конец, обновление — по позиции.
type ItemList struct {
	items []LineItem
}

// NewItemList создает список из одной пустой строки.
func NewItemList() *ItemList {
	return &ItemList{items: []LineItem{{Quantity: 1}}}
}

// NewItemListFrom создает список из переданных строк.
// Пустой срез заменяется одной пустой строкой.
func NewItemListFrom(items []LineItem) *ItemList {
	if len(items) == 0 {
		return NewItemList()
	}
	list := &ItemList{items: make([]LineItem, len(items))}
	copy(list.items, items)
	return list
}

// Add добавляет пустую строку в конец списка.
func (l *ItemList) Add() {
	l.items = append(l.items, LineItem{Quantity: 1})
}

// RemoveAt удаляет строку по позиции. Возвращает false, если позиция
// вне диапазона или в списке осталась единственная строка.
func (l *ItemList) RemoveAt(index int) bool {
	if len(l.items) == 1 {
		return false
	}
	if index < 0 || index >= len(l.items) {
		return false
	}
	l.items = append(l.items[:index], l.items[index+1:]...)
	return true
}

// UpdateAt заменяет строку по позиции. Возвращает false, если позиция вне диапазона.
func (l *ItemList) UpdateAt(index int, item LineItem) bool {
	if index < 0 || index >= len(l.items) {
		return false
	}
	l.items[index] = item
	return true
}

// Items возвращает копию строк списка в порядке ввода.
func (l *ItemList) Items() []LineItem {
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len возвращает количество строк в списке.
func (l *ItemList) Len() int {
	return len(l.items)
}
