// Package fuzztests houses Go fuzz harnesses for the grammar pipeline
// (source -> parser -> rules -> serializer). They guard against panics,
// hangs and unstable output on arbitrary inputs.
//
// Назначение: прогонять произвольные байты через FileSet, парсер и форматтер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/parser, internal/format,
// internal/config.
package fuzztests
