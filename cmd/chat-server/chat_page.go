package main

import (
    "net/http"
)

func serveChatPage(w http.ResponseWriter) {
    w.Header().Set("Content-Type", "text/html")
    w.WriteHeader(http.StatusOK)
    w.Write([]byte(chat_page))
}

const chat_page = `<html>
    <head>
        <title> Dummy chat relay </title>
        <meta charset="utf-8" name="viewport" />

        <style>
            body {
                padding-left: 10%;
                padding-right: 10%;
                font-size: large;
            }
            div {
                display: flex;
                flex-direction: row;
                align-items: baseline;
                margin-bottom: 0.25em;
            }
            label {
                font-size: large;
            }
            input.text {
                margin-left: 1em;
                height: 2em;
                font-size: large;
            }
            input.button {
                height: 2em;
                font-size: large;
            }
            input.textbox {
                width: 90%;
                margin-right: 0.25em;
                margin-top: 0.25em;
                height: 2em;
                font-size: large;
            }
            div.textbox {
                display: block;
                width: 95%;
                height: 75%;
                margin-top: 0.25em;
                overflow-y: scroll;
                border: solid;
                padding: 1em;
            }
        </style>

        <script>
            let ws = null;
            let nickname = '';

            let appendMsg = function(msg) {
                let chat = document.getElementById('chat');
                chat.innerHTML += msg;
                chat.scrollTo(0, chat.scrollHeight);
            }

            let wsRecv = function(e) {
                let ev = JSON.parse(e.data);

                switch (ev.event) {
                case 'user-joined':
                    appendMsg('<p> ' + ev.nickname + ' joined! </p>');
                    break;
                case 'user-sent-message':
                    appendMsg('<p> ' + ev.nickname + ': ' + ev.content + ' </p>');
                    break;
                case 'user-timed-out':
                    appendMsg('<p> ' + ev.nickname + ' timed out... </p>');
                    break;
                case 'user-disconnected':
                    appendMsg('<p> ' + ev.nickname + ' disconnected... </p>');
                    break;
                case 'nickname-already-registered':
                    appendMsg('<p> That nickname is taken, pick another one! </p>');
                    break;
                case 'invalid-nickname':
                    appendMsg('<p> That nickname is not valid, pick another one! </p>');
                    break;
                case 'timed-out':
                    appendMsg('<p> You were disconnected for being idle! </p>');
                    break;
                }
            }

            let wsClose = function(e) {
                appendMsg('<p> Connection to the room was closed! </p>');
                ws = null;
            }

            let connect = function() {
                let nfield = document.getElementById('nickname');

                nickname = nfield.value;

                if (ws != null) {
                    ws.close()
                    ws = null;
                }

                ws = new WebSocket('ws://' + window.location.host + '/chat')
                ws.addEventListener('open', function (e) {
                    ws.send(JSON.stringify({event: 'join', nickname: nickname}));
                })
                ws.addEventListener('message', wsRecv)
                ws.addEventListener('close', wsClose)
            }

            let send = function() {
                let mfield = document.getElementById('message');

                let msg = mfield.value;
                if (msg == '' || ws == null) {
                    return;
                }

                ws.send(JSON.stringify({event: 'send-message', content: msg}));

                mfield.value = '';
            }

            let on_boot = function (e) {
                let mfield = document.getElementById('message');
                mfield.addEventListener('keyup', function (e) {
                    if (event.key == 'Enter') {
                        send();
                    }
                });
            }
            document.addEventListener('DOMContentLoaded', on_boot);
        </script>
    </head>

    <body>
        <div>
            <label for='nickname'> Nickname: </label>
            <input class='text' type='text' id='nickname' name='nickname'>
        </div>
        <div>
            <input class='button' onclick="connect();" type="button" value="Join">
        </div>

        <div class='textbox' id='chat'> </div>

        <div>
            <input class='textbox' type='text' id='message' name='message'>
            <input class='button' onclick="send();" type="button" value="Send">
        </div>
    </body>
</html>`
