// Package format runs the formatting pipeline: parse, the enabled rewrite
// passes in their fixed order, serialize.
//
// Назначение: единая точка входа форматирования одного файла.
// Не делает: IO, обход каталогов, кэширование (см. internal/driver).
// Зависимости: internal/parser, internal/rules, internal/trace, internal/observ.
package format
