// Package textutil provides the text handling shared by the converter:
// decoding source files into UTF-8 and escaping text for embedding in HTML.
//
// Escape and Unescape are exact inverses. The generated page carries a
// JavaScript twin of Unescape, so the entity set here and in the page template
// must stay in lockstep.
package textutil
